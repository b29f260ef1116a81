package app

import (
	"github.com/iov-one/bazaar"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...bazaar.Initializer) bazaar.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []bazaar.Initializer
}

// FromGenesis passes opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts bazaar.Options, kv bazaar.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
