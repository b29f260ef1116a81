package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Indexer calculates the secondary index value of a model. A nil value
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index keeps one entry per indexed model under
//
//   _i.<bucket>.<index>:<value length><value><primary key>
//
// so all keys indexed under one value can be found with a prefix scan.
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) *index {
	return &index{
		name:    name,
		prefix:  []byte("_i." + bucket + "." + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i *index) valuePrefix(value []byte) []byte {
	res := make([]byte, len(i.prefix)+4, len(i.prefix)+4+len(value))
	copy(res, i.prefix)
	binary.BigEndian.PutUint32(res[len(i.prefix):], uint32(len(value)))
	return append(res, value...)
}

func (i *index) entryKey(value, key []byte) []byte {
	return append(i.valuePrefix(value), key...)
}

func (i *index) value(m Model) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return i.indexer(m)
}

// update moves the index entry of the model stored under key from the
// prev value to the next value. A nil prev means insert, a nil next means
// delete.
func (i *index) update(db bazaar.KVStore, key []byte, prev, next Model) error {
	prevVal, err := i.value(prev)
	if err != nil {
		return errors.Wrap(err, "previous value")
	}
	nextVal, err := i.value(next)
	if err != nil {
		return errors.Wrap(err, "next value")
	}
	if prevVal != nil {
		if err := db.Delete(i.entryKey(prevVal, key)); err != nil {
			return err
		}
	}
	if nextVal == nil {
		return nil
	}
	if i.unique {
		keys, err := i.keys(db, nextVal)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if !bytes.Equal(k, key) {
				return errors.Wrapf(errors.ErrDuplicate, "unique index %s", i.name)
			}
		}
	}
	return db.Set(i.entryKey(nextVal, key), []byte{})
}

// keys returns all primary keys indexed under the given value.
func (i *index) keys(db bazaar.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := i.valuePrefix(value)
	start, end := PrefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "index iterator")
	}
	models, err := ConsumeIterator(it)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(models))
	for _, m := range models {
		keys = append(keys, m.Key[len(prefix):])
	}
	return keys, nil
}
