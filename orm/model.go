package orm

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	bazaar.Persistent
	Validate() error
}

// ConsumeIterator reads all remaining data into a list and closes the
// iterator.
func ConsumeIterator(it bazaar.Iterator) ([]bazaar.Model, error) {
	defer it.Close()

	var res []bazaar.Model
	for it.Valid() {
		res = append(res, bazaar.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return res, nil
}

// PrefixRange returns the [start, end) range of keys that share the given
// prefix. A nil end means there is no upper bound.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	start := append([]byte{}, prefix...)
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
