package app

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed bazaar.CommitKVStore
	deliver   bazaar.KVCacheWrap
	check     bazaar.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up
// the deliver and check caches.
func NewCommitStore(store bazaar.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (bazaar.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it to disk.
// It then regenerates new deliver and check caches.
func (cs *CommitStore) Commit() (bazaar.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return bazaar.CommitID{}, errors.Wrap(err, "flush deliver")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() bazaar.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during
// the delivery phase.
func (cs *CommitStore) DeliverStore() bazaar.CacheableKVStore {
	return cs.deliver
}

// _bz: is a prefix for internal data
const chainIDKey = "_bz:chainID"

// mustLoadChainID returns the chain id stored if any. It panics on db
// error.
func mustLoadChainID(kv bazaar.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store. It fails if the id is
// already set or invalid.
func saveChainID(kv bazaar.KVStore, chainID string) error {
	if !bazaar.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chainId")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chainId")
	}
	return nil
}
