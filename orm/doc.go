/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket holds one type of model, serialized with the swap codec and
stored under the key name + ":" + primary key.

Since every primary key used by the escrow application is derived from the
data it identifies (the maker and the offer id, the owner and the asset),
buckets do not generate ids. All lookups are done by primary key or by a
primary key prefix.
*/
package orm
