package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/bazaar/errors"
)

const (
	appStateKey    = "app_state"
	flagOverwrite  = "i"
	genesisSubpath = "config/genesis.json"
)

// GenOptions can parse command line arguments to generate the default
// app_state of the genesis file. This is application specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't want
// to parse, so we just grab it into a raw object format, so we can add
// one line.
type GenesisDoc map[string]json.RawMessage

func parseInitFlags(args []string) (bool, []string, error) {
	var overwrite bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&overwrite, flagOverwrite, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return false, nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return overwrite, initFlags.Args(), nil
}

// InitCmd adds the application state to the genesis file created by
// `tendermint init` in the home directory.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	overwrite, rest, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	genFile := filepath.Join(home, genesisSubpath)
	logger.Info("Loading genesis file", "path", genFile)

	options, err := gen(rest)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, overwrite); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func addGenesisOptions(filename string, options json.RawMessage, overwrite bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "genesis file, run `tendermint init` first: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}

	if state := doc[appStateKey]; len(state) > 0 && string(state) != "null" && !overwrite {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s, use -%s to overwrite", filename, flagOverwrite)
	}
	doc[appStateKey] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
