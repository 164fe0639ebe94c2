/*

Package swap defines interfaces used throughout the escrow application, such as: storage,
transactions, handlers, conditions etc.
It also contains helpers to work with context, queries and abci results.
The escrow state machine itself lives in x/offer, and is built only on top of the
interfaces declared here.

*/

package swap
