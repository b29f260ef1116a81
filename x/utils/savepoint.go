package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Savepoint isolates all writes done by the wrapped handler and commits
// them only if it succeeds. Events emitted by a failed handler are
// dropped as well.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ bazaar.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. It does nothing until
// OnCheck or OnDeliver is called.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *bazaar.CheckResult
	err := savepoint(ctx, db, func(db bazaar.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *bazaar.DeliverResult
	err := savepoint(ctx, db, func(db bazaar.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

func savepoint(ctx bazaar.Context, db bazaar.KVStore, fn func(bazaar.KVStore) error) error {
	cstore, ok := db.(bazaar.CacheableKVStore)
	if !ok {
		return fn(db)
	}

	events := bazaar.GetEventLog(ctx)
	mark := events.Mark()
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		events.Rollback(mark)
		return err
	}
	if err := cache.Write(); err != nil {
		events.Rollback(mark)
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
