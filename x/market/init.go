package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

// Initializer stores the marketplace configuration declared in the
// genesis "conf" section.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

func (Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, packageName, &conf); {
	case err == nil:
		return nil
	case errors.ErrNotFound.Is(err):
		// A chain without a marketplace.
		return nil
	default:
		return errors.Wrap(err, "marketplace configuration")
	}
}
