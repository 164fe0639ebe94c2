package store

import "github.com/iov-one/swap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = swap.ReadOnlyKVStore
type SetDeleter = swap.SetDeleter
type KVStore = swap.KVStore
type Iterator = swap.Iterator
type CacheableKVStore = swap.CacheableKVStore
type KVCacheWrap = swap.KVCacheWrap
type CommitKVStore = swap.CommitKVStore
type CommitID = swap.CommitID
type Model = swap.Model

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return swap.Pair(key, value)
}
