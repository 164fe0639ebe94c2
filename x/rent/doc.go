/*
Package rent charges storage deposits.

Every object that occupies state on behalf of somebody (an offer, a
holding account) is backed by a deposit. The deposit is taken from the
payer when the object is created and paid out when the object is
removed. Deposits are held by the rent pool, an address derived from a
condition of this package, so no key can ever spend them.

The deposit amount and asset are configured through gconf. A zero amount
disables deposits.
*/
package rent
