package store

import (
	"github.com/iov-one/bazaar/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// SliceIterator iterates over a preloaded list of models.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over the given models, in the
// order provided.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	s.idx++
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.data[s.idx].Key
}

func (s *SliceIterator) Value() []byte {
	return s.data[s.idx].Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

// dbIterator adapts the tendermint database iterator.
type dbIterator struct {
	dbm.Iterator
}

func (i dbIterator) Next() error {
	if !i.Valid() {
		return errors.Wrap(errors.ErrIteratorDone, "db iterator")
	}
	i.Iterator.Next()
	return nil
}
