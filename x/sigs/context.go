package sigs

import (
	"context"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this package can add signers.
func withSigners(ctx bazaar.Context, signers []bazaar.Condition) bazaar.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current context. May be empty.
func (Authenticate) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	val, _ := ctx.Value(contextKeySigners).([]bazaar.Condition)
	return val
}

// HasAddress returns true if the address signed the current context.
func (a Authenticate) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
