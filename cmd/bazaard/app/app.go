/*
Package bazaard links together all the various components to construct
the marketplace application.
*/
package bazaard

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store/iavl"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	"github.com/iov-one/bazaar/x/sigs"
	"github.com/iov-one/bazaar/x/utils"
)

// Name is returned from abci.Info.
const Name = "bazaar"

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash, asset and market
// handlers. The marketplace settles payments through the cash wallets
// and moves tokens of the asset registry.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	bank := cash.NewController(cash.NewWalletBucket())
	registry := asset.NewRegistry()

	cash.RegisterRoutes(r, authFn, bank)
	asset.RegisterRoutes(r, authFn, registry)
	market.RegisterRoutes(r, authFn, market.NewLedger(registry, bank))
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/collections", "/tokens", "/listings" and
// "/proceeds".
func QueryRouter() bazaar.QueryRouter {
	r := bazaar.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		asset.RegisterQuery,
		market.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() bazaar.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		asset.Initializer{},
		market.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack() bazaar.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with the given
// arguments. The bus is optional.
func Application(h bazaar.Handler, kv bazaar.CommitKVStore, bus *app.EventBus, debug bool) *app.BaseApp {
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, h, bus, debug)
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path returns an in memory store.
func CommitKVStore(dbPath string) (bazaar.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// goleveldb adds the ".db" suffix itself
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
