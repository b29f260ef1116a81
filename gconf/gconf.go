package gconf

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ReadStore is a subset of bazaar.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of bazaar.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is implemented by objects that can serialize themselves
// to a binary representation and check their own state.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by objects that can load their state from a
// binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is implemented by every configuration entity.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the object and writes it as the configuration singleton
// of the given package.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := confKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	if err := db.Set(key, raw); err != nil {
		return errors.Wrapf(err, "store: key %q", key)
	}
	return nil
}

// Load reads the configuration of the given package into dst. It returns
// ErrNotFound if no configuration was ever saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrapf(err, "load: key %q", key)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig takes opts["conf"][pkg], parses it into the given
// configuration, validates it and stores it under the package key.
func InitConfig(db Store, opts bazaar.Options, pkg string, conf Configuration) error {
	var confOptions bazaar.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
