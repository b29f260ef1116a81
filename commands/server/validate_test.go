package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

type tickerInit struct{}

func (tickerInit) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var ticker string
	if err := opts.ReadOptions("ticker", &ticker); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if ticker == "" {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	return db.Set([]byte("ticker"), []byte(ticker))
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	write := func(name, content string) string {
		path := filepath.Join(home, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	good := write("good.json", `{"app_state": {"ticker": "IOV"}}`)
	empty := write("empty.json", `{"app_state": {}}`)
	broken := write("broken.json", `{"app_state": `)

	assert.NoError(t, ValidateGenesis(tickerInit{}, []string{good}))

	err := ValidateGenesis(tickerInit{}, []string{good, empty})
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	err = ValidateGenesis(tickerInit{}, []string{broken})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	err = ValidateGenesis(tickerInit{}, []string{filepath.Join(home, "missing.json")})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	err = ValidateGenesis(tickerInit{}, nil)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}
