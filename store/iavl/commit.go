package iavl

import (
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore keeps the application state in a versioned merkle tree.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a goleveldb backed store named name
// inside the dir directory.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return NewCommitStoreFromDB(db), nil
}

// MockCommitStore returns a store kept in memory, for tests.
func MockCommitStore() *CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB builds the tree on top of any tendermint database.
func NewCommitStoreFromDB(db dbm.DB) *CommitStore {
	return &CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

// Get returns the value at the last committed version.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the working tree as the next version.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the latest persisted version.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap returns a cache whose Write stages the changes in the working
// tree. Staged changes become visible to Get after Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCache(workingTree{s.tree}, nil)
}

// workingTree exposes the uncommitted tree as a KVStore.
type workingTree struct {
	tree *iavl.MutableTree
}

func (w workingTree) Get(key []byte) ([]byte, error) {
	_, val := w.tree.Get(key)
	return val, nil
}

func (w workingTree) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w workingTree) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w workingTree) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w workingTree) Iterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(w.load(start, end, true)), nil
}

func (w workingTree) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(w.load(start, end, false)), nil
}

func (w workingTree) load(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	w.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return res
}
