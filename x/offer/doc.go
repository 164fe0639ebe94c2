/*
Package offer implements a two-party token escrow.

A maker creates an offer by moving an amount of asset A into a custody
vault and recording the amount of asset B expected in return. A taker
fulfills the offer by paying the expected amount of asset B to the
maker, receiving the whole vault content in exchange. Until then the
maker can cancel the offer and get the vault content back.

An offer is stored under a key derived from the maker address and a
maker chosen offer ID, so any party can locate it without an index.
There is no status field. An offer exists while it is open and is
deleted once fulfilled or cancelled.

The custody vault is a token holding account owned by the address of a
condition derived from the offer key and a single byte bump. No private
key exists for it. Only this package can construct the condition, which
makes it the only party able to move funds out of a vault. The vault is
closed together with the offer on both terminal paths and never
outlives it.

All amounts of a transition are moved within a single transaction, which
the application executes atomically. The taker cannot receive asset A
without the maker receiving asset B.
*/
package offer
