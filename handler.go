package bazaar

import (
	"encoding/json"

	"github.com/iov-one/bazaar/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler processes a few specific messages, for example listing an asset
// or withdrawing proceeds.
type Handler interface {
	Checker
	Deliverer
}

// Checker verifies the validity of a transaction without executing it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide functionality common to many
// handlers, like authentication or logging.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check call.
type CheckResult struct {
	// Data is a machine readable result.
	Data []byte
	// Log is a human readable message.
	Log string
	// GasAllocated is the amount of gas the transaction may use.
	GasAllocated int64
}

// DeliverResult is returned by a successful Deliver call.
type DeliverResult struct {
	// Data is a machine readable result, for example the id of a
	// created entity.
	Data []byte
	// Log is a human readable message.
	Log string
	// Tags are indexed by tendermint and allow to search for
	// transactions.
	Tags []common.KVPair
}

// Options are the app options. Each extension can look up its key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the value stored under a given key and parses the
// json into the given obj. A missing key is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from the
// genesis file content.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
