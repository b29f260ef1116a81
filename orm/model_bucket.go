package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into the given
	// destination. ErrNotFound is returned if the entity does not exist.
	One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with the given key exists and
	// ErrNotFound otherwise.
	Has(db bazaar.ReadOnlyKVStore, key []byte) error

	// Put validates and saves the model, updating all indexes.
	Put(db bazaar.KVStore, key []byte, m Model) error

	// Delete removes the entity with the given primary key, together with
	// its index entries. It returns ErrNotFound if the entity does not
	// exist.
	Delete(db bazaar.KVStore, key []byte) error

	// ByIndex loads all models indexed under the given value into the
	// destination, which must be a pointer to a slice of models (or model
	// pointers). Primary keys of the loaded models are returned in the
	// same order.
	ByIndex(db bazaar.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error)

	// Register exposes the bucket and all its indexes under the given
	// query path.
	Register(path string, r bazaar.QueryRouter)
}

// ModelBucketOption configures a model bucket.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index. A unique index rejects two models
// sharing the same index value with ErrDuplicate.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index name: " + name)
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique)
	}
}

// NewModelBucket returns a bucket that stores models of the same type as
// the given example. Models are stored with the bucket name as the key
// prefix.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	t := reflect.TypeOf(example)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: t.Elem(),
		indexes:   make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	indexes   map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.modelType).Interface().(Model)
}

func (mb *modelBucket) load(db bazaar.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %s entity", mb.name)
	}
	return m, nil
}

func (mb *modelBucket) One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error {
	m, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s entity", mb.name)
	}
	return setValue(dest, m)
}

func (mb *modelBucket) Has(db bazaar.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s entity", mb.name)
	}
	return nil
}

func (mb *modelBucket) Put(db bazaar.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.modelType) {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", mb.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %s entity", mb.name)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db bazaar.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s entity", mb.name)
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) ByIndex(db bazaar.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no %q index in %s bucket", indexName, mb.name)
	}
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	slice := dv.Elem()
	elemType := slice.Type().Elem()

	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		m, err := mb.load(db, key)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %s points to a missing entity", indexName)
		}
		mv := reflect.ValueOf(m)
		switch {
		case mv.Type().AssignableTo(elemType):
			slice = reflect.Append(slice, mv)
		case mv.Elem().Type().AssignableTo(elemType):
			slice = reflect.Append(slice, mv.Elem())
		default:
			return nil, errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", m, elemType)
		}
	}
	dv.Elem().Set(slice)
	return keys, nil
}

// setValue copies the model into the destination.
func setValue(dest Model, src Model) error {
	dv := reflect.ValueOf(dest)
	sv := reflect.ValueOf(src)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	if !sv.Type().AssignableTo(dv.Type()) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", src, dest)
	}
	dv.Elem().Set(sv.Elem())
	return nil
}
