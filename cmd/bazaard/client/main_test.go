package client

import (
	"os"
	"testing"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/log"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
	tm "github.com/tendermint/tendermint/types"

	"github.com/iov-one/bazaar"
	bazaard "github.com/iov-one/bazaar/cmd/bazaard/app"
	"github.com/iov-one/bazaar/crypto"
)

// adjust this to get debug output
var logger = log.NewNopLogger() // log.NewTMLogger(log.NewSyncWriter(os.Stdout))

// useful values for test cases
var node *nm.Node
var faucet *crypto.PrivateKey

func TestMain(m *testing.M) {
	faucet = crypto.GenPrivKeyEd25519()

	config := rpctest.GetConfig()
	config.Moniker = "SetInTestMain"

	application, err := initApp(config, faucet.PublicKey().Address())
	if err != nil {
		panic(err)
	}

	node = rpctest.StartTendermint(application)
	time.Sleep(100 * time.Millisecond) // time to setup app context
	code := m.Run()

	node.Stop()
	node.Wait()
	os.Exit(code)
}

func initApp(config *cfg.Config, addr bazaar.Address) (abci.Application, error) {
	application, err := bazaard.GenerateApp(config.RootDir, logger, nil, false)
	if err != nil {
		return nil, err
	}
	doc, err := tm.GenesisDocFromFile(config.GenesisFile())
	if err != nil {
		return nil, err
	}
	appState, err := bazaard.GenInitOptions([]string{"IOV", addr.String()})
	if err != nil {
		return nil, err
	}
	doc.AppState = appState
	return application, doc.SaveAs(config.GenesisFile())
}
