package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/bazaar/errors"
)

// BTreeCache keeps all changes in a btree on top of a parent store. The
// parent is only read until Write is called.
type BTreeCache struct {
	bt     *btree.BTree
	free   *btree.FreeList
	parent KVStore
}

var _ KVCacheWrap = (*BTreeCache)(nil)

// NewBTreeCache initializes a cache around the given store. free may be
// nil, or an existing list shared between nested caches.
func NewBTreeCache(parent KVStore, free *btree.FreeList) *BTreeCache {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return &BTreeCache{
		bt:     btree.NewWithFreeList(2, free),
		free:   free,
		parent: parent,
	}
}

// CacheWrap layers another cache on top of this one.
func (c *BTreeCache) CacheWrap() KVCacheWrap {
	return NewBTreeCache(c, c.free)
}

// Write flushes all cached operations to the parent in key order and
// clears the cache.
func (c *BTreeCache) Write() error {
	var err error
	c.bt.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if e.deleted {
			err = c.parent.Delete(e.key)
		} else {
			err = c.parent.Set(e.key, e.value)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "cache write")
	}
	c.Discard()
	return nil
}

// Discard drops all cached operations.
func (c *BTreeCache) Discard() {
	c.bt.Clear(true)
}

func (c *BTreeCache) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.bt.ReplaceOrInsert(entry{key: key, value: append([]byte{}, value...)})
	return nil
}

func (c *BTreeCache) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.bt.ReplaceOrInsert(entry{key: key, deleted: true})
	return nil
}

// Get reads from the cache if the key was written, otherwise from the
// parent.
func (c *BTreeCache) Get(key []byte) ([]byte, error) {
	if i := c.bt.Get(entry{key: key}); i != nil {
		e := i.(entry)
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c *BTreeCache) Has(key []byte) (bool, error) {
	if i := c.bt.Get(entry{key: key}); i != nil {
		return !i.(entry).deleted, nil
	}
	return c.parent.Has(key)
}

// Iterator combines the cached entries with those of the parent, in
// ascending order.
func (c *BTreeCache) Iterator(start, end []byte) (Iterator, error) {
	models, err := c.merged(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

// ReverseIterator combines the cached entries with those of the parent,
// in descending order.
func (c *BTreeCache) ReverseIterator(start, end []byte) (Iterator, error) {
	models, err := c.merged(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return NewSliceIterator(models), nil
}

// merged returns all visible entries within [start, end) in ascending
// order. Cached entries shadow the parent's.
func (c *BTreeCache) merged(start, end []byte) ([]Model, error) {
	cached := c.cachedRange(start, end)

	it, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "parent iterator")
	}
	defer it.Close()

	var res []Model
	for it.Valid() {
		key := it.Key()
		for len(cached) > 0 && bytes.Compare(cached[0].key, key) < 0 {
			res = cached[0].appendTo(res)
			cached = cached[1:]
		}
		if len(cached) > 0 && bytes.Equal(cached[0].key, key) {
			res = cached[0].appendTo(res)
			cached = cached[1:]
		} else {
			res = append(res, Model{Key: key, Value: it.Value()})
		}
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	for _, e := range cached {
		res = e.appendTo(res)
	}
	return res, nil
}

func (c *BTreeCache) cachedRange(start, end []byte) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.bt.Ascend(collect)
	case start == nil:
		c.bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		c.bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		c.bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

// entry is a single cached operation.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

func (e entry) appendTo(models []Model) []Model {
	if e.deleted {
		return models
	}
	return append(models, Model{Key: e.key, Value: e.value})
}
