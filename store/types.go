package store

import "github.com/iov-one/bazaar"

// Short names for all storage types used in this package.
type (
	ReadOnlyKVStore  = bazaar.ReadOnlyKVStore
	KVStore          = bazaar.KVStore
	Iterator         = bazaar.Iterator
	CacheableKVStore = bazaar.CacheableKVStore
	KVCacheWrap      = bazaar.KVCacheWrap
	CommitKVStore    = bazaar.CommitKVStore
	CommitID         = bazaar.CommitID
	Model            = bazaar.Model
)
