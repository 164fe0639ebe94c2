/*
Package app contains the pieces that turn a set of extensions into a
running tendermint application: a Router dispatching messages to
handlers, a chain of decorators wrapping it, the chain state keeping
the check and deliver caches, and the ABCI implementation itself.

All ABCI calls touching the state are serialized, so two transactions
can never observe each other half way.
*/
package app
