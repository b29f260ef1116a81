package bazaartest

import (
	"context"
	"fmt"

	"github.com/iov-one/bazaar"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates all the referenced conditions. Signer and Signers can
// be used together.
type Auth struct {
	// Signer authenticates a single signer.
	Signer bazaar.Condition

	// Signers authenticates multiple signers.
	Signers []bazaar.Condition
}

func (a *Auth) GetConditions(bazaar.Context) []bazaar.Condition {
	if a.Signer != nil {
		return append(append([]bazaar.Condition{}, a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface. It stores and
// retrieves conditions using the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx bazaar.Context, conds ...bazaar.Condition) bazaar.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]bazaar.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []bazaar.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
