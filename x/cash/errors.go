package cash

import "github.com/iov-one/bazaar/errors"

var (
	// ErrInsufficientFunds is returned when a wallet holds less than
	// requested.
	ErrInsufficientFunds = errors.Register(1400, "insufficient funds")

	// ErrBlocked is returned when coins are sent to a wallet that refuses
	// incoming transfers.
	ErrBlocked = errors.Register(1401, "wallet is blocked")
)
