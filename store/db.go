package store

import (
	"github.com/iov-one/bazaar/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DBStore exposes a tendermint database as a KVStore. Every write goes
// straight to the database.
type DBStore struct {
	db dbm.DB
}

var _ CacheableKVStore = DBStore{}

// NewDBStore wraps the given database.
func NewDBStore(db dbm.DB) DBStore {
	return DBStore{db: db}
}

// MemStore returns a cacheable store kept in memory. Useful for tests.
func MemStore() CacheableKVStore {
	return NewDBStore(dbm.NewMemDB())
}

func (s DBStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.db.Get(key), nil
}

func (s DBStore) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.db.Has(key), nil
}

func (s DBStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.db.Set(key, value)
	return nil
}

func (s DBStore) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.db.Delete(key)
	return nil
}

func (s DBStore) Iterator(start, end []byte) (Iterator, error) {
	return dbIterator{s.db.Iterator(start, end)}, nil
}

// ReverseIterator loads the range and returns it in descending order.
func (s DBStore) ReverseIterator(start, end []byte) (Iterator, error) {
	it := s.db.Iterator(start, end)
	defer it.Close()
	var models []Model
	for ; it.Valid(); it.Next() {
		models = append([]Model{{Key: it.Key(), Value: it.Value()}}, models...)
	}
	return NewSliceIterator(models), nil
}

// CacheWrap returns a btree cache that writes into this store.
func (s DBStore) CacheWrap() KVCacheWrap {
	return NewBTreeCache(s, nil)
}
