// Package x contains the abstractions shared by all extensions.
package x

import (
	"github.com/iov-one/bazaar"
)

// Authenticator extracts authentication info from the context. It is
// passed into handler constructors so that another authentication system
// can be plugged in.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled.
	GetConditions(bazaar.Context) []bazaar.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(bazaar.Context, bazaar.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the conditions of all Authenticators, in order.
func (m MultiAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	var res []bazaar.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx bazaar.Context, auth Authenticator) []bazaar.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]bazaar.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil. The main
// signer acts as the seller, the buyer or the withdrawing party.
func MainSigner(ctx bazaar.Context, auth Authenticator) bazaar.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// HasAllAddresses returns true if all required addresses are
// authenticated.
func HasAllAddresses(ctx bazaar.Context, auth Authenticator, required []bazaar.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if all required conditions are
// fulfilled.
func HasAllConditions(ctx bazaar.Context, auth Authenticator, required []bazaar.Condition) bool {
	have := auth.GetConditions(ctx)
	for _, r := range required {
		found := false
		for _, c := range have {
			if c.Equals(r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
