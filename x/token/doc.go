/*
Package token implements the asset registry and the holding accounts
of the swap application.

Every asset is identified by its ticker and declares the number of
decimals its amounts use. A holding account stores the balance of a
single asset for a single owner and is keyed by owner address followed
by the ticker, so that all accounts of an owner share a key prefix.

Funds move only through TransferChecked, which requires the authority
of the source account owner. The owner may be the address of a key or
of any derived condition, which is how other extensions take custody of
funds without ever holding a private key.
*/
package token
