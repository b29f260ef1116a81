package orm

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Register exposes the bucket under the path and every index under
// path/<index name>. Bucket queries support the key and prefix modifiers,
// index queries return all models indexed under the value.
func (mb *modelBucket) Register(path string, r bazaar.QueryRouter) {
	r.Register(path, bucketQuery{mb})
	for name, idx := range mb.indexes {
		r.Register(path+"/"+name, indexQuery{mb: mb, idx: idx})
	}
}

type bucketQuery struct {
	mb *modelBucket
}

func (q bucketQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	switch mod {
	case bazaar.KeyQueryMod:
		raw, err := db.Get(q.mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []bazaar.Model{bazaar.Pair(data, raw)}, nil
	case bazaar.PrefixQueryMod:
		start, end := PrefixRange(q.mb.dbKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		models, err := ConsumeIterator(it)
		if err != nil {
			return nil, err
		}
		for i := range models {
			models[i].Key = models[i].Key[len(q.mb.prefix):]
		}
		return models, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}
}

type indexQuery struct {
	mb  *modelBucket
	idx *index
}

func (q indexQuery) Query(db bazaar.ReadOnlyKVStore, mod string, data []byte) ([]bazaar.Model, error) {
	if mod != bazaar.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported index query modifier %q", mod)
	}
	keys, err := q.idx.keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]bazaar.Model, 0, len(keys))
	for _, key := range keys {
		raw, err := db.Get(q.mb.dbKey(key))
		if err != nil {
			return nil, err
		}
		res = append(res, bazaar.Pair(key, raw))
	}
	return res, nil
}
