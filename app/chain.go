package app

import (
	"reflect"

	"github.com/iov-one/bazaar"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []bazaar.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Router), returns a Handler that will execute this whole
stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewTagger(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...bazaar.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...bazaar.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := make([]bazaar.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, chain...)
	return Decorators{chain: newChain}
}

// cutoffNil will in-place remove all nil values from given slice.
func cutoffNil(ds []bazaar.Decorator) []bazaar.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h bazaar.Handler) bazaar.Handler {
	// the top of the chain is executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    bazaar.Decorator
	next bazaar.Handler
}

var _ bazaar.Handler = step{}

func (s step) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
