package asset

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// GenesisToken is a token declared in the genesis file.
type GenesisToken struct {
	ID    []byte         `json:"id,omitempty"`
	Owner bazaar.Address `json:"owner"`
	URI   string         `json:"uri,omitempty"`
}

// GenesisCollection is a collection declared in the genesis file.
type GenesisCollection struct {
	Owner  bazaar.Address `json:"owner"`
	Name   string         `json:"name"`
	Tokens []GenesisToken `json:"tokens"`
}

// Initializer creates the collections declared under the "asset" key.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

func (Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var colls []GenesisCollection
	if err := opts.ReadOptions("asset", &colls); err != nil {
		return err
	}
	reg := NewRegistry()
	for i, gc := range colls {
		if err := gc.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "collection %d owner", i)
		}
		addr, err := reg.CreateCollection(db, gc.Owner, gc.Name)
		if err != nil {
			return errors.Wrapf(err, "collection %d", i)
		}
		for j, gt := range gc.Tokens {
			if _, err := reg.Mint(db, addr, gt.ID, gt.Owner, gt.URI); err != nil {
				return errors.Wrapf(err, "collection %d token %d", i, j)
			}
		}
	}
	return nil
}
