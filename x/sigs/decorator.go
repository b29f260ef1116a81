/*
Package sigs verifies the ed25519 signatures of a transaction and maintains
a sequence per key for replay protection. Verified signers are available to
handlers through the Authenticate type.
*/
package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const signatureVerifyCost = 500

// Decorator verifies the signatures and adds them to the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ bazaar.Decorator = Decorator{}

// NewDecorator returns a decorator that requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows transactions without any signature to pass.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) verify(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (bazaar.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, bazaar.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	ctx, n, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Only valid signatures are charged for.
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}
