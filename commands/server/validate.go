package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

// ValidateGenesis loads the app_state of every genesis file into an in
// memory store and returns the first error.
func ValidateGenesis(ini bazaar.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: cmd validate <genesis.json> [<genesis.json>...]")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini bazaar.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State bazaar.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
