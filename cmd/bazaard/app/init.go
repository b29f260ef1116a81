package bazaard

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
)

// genesisFunds is the balance of the development account.
const genesisFunds = 123456789

// GenInitOptions produces the app_state of a development chain: one rich
// account that owns an empty asset collection and the marketplace.
//
// Arguments are an optional ticker (default IOV) and an optional address.
// When no address is given a key is generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr bazaar.Address
	if len(args) > 1 {
		var err error
		if addr, err = bazaar.ParseAddress(args[1]); err != nil {
			return nil, err
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	} else {
		generated, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = generated
		fmt.Println(keys)
	}

	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{{
			Address: addr,
			Coins:   []coin.Coin{coin.NewCoin(genesisFunds, ticker)},
		}},
		"asset": []asset.GenesisCollection{{
			Owner: addr,
			Name:  "genesis",
		}},
		"conf": map[string]interface{}{
			"market": market.Configuration{
				Owner:           addr,
				Ticker:          ticker,
				ReentrancyGuard: true,
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create the application for the start command.
// The database lives in the home directory, an empty home keeps it in
// memory.
func GenerateApp(home string, logger log.Logger, bus *app.EventBus, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "bazaar.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	application := Application(Stack(), kv, bus, debug)
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a new key, along with a json
// representation of the key pair.
func GenerateCoinKey() (bazaar.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return pubKey.Address(), string(keys), nil
}
