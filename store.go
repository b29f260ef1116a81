package bazaar

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. A nil start or end means an open range.
	// No writes may happen within a domain while an iterator exists
	// over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing data.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
//
// All backing stores implement this interface. They may implement
// other methods as well.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator allows us to access a set of items within a range of keys.
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Close()
//   for ; it.Valid(); err = it.Next() {
//     key, value := it.Key(), it.Value()
//   }
type Iterator interface {
	// Valid returns whether the current position is valid. Once
	// invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next key. It returns
	// errors.ErrIteratorDone when called on an invalid iterator.
	Next() error

	// Key returns the key of the cursor.
	Key() []byte

	// Value returns the value of the cursor.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap maintains a scratch-pad of uncommitted data that is visible
// to all queries made through it. Call Write to flush the cached data to
// the parent store, or Discard to drop it.
//
// This works like SAVEPOINT / ROLLBACK TO SAVEPOINT in postgres.
type KVCacheWrap interface {
	CacheableKVStore

	// Write flushes all changes to the underlying store.
	Write() error

	// Discard drops all cached changes.
	Discard()
}

// CommitKVStore is a store that persists state to disk, loads it on start
// up and maintains history.
type CommitKVStore interface {
	// Get returns the value at the last committed state.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a wrap to perform actions on. Write on that wrap
	// stages the changes until Commit.
	CacheWrap() KVCacheWrap

	// Commit the next version to disk, and returns info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version.
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
