package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ bazaar.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (_ *bazaar.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (_ *bazaar.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
