package market

import "github.com/iov-one/bazaar/errors"

// Every failure of a ledger operation is of one of these kinds. Compare
// with ErrX.Is(err).
var (
	ErrAlreadyListed  = errors.Register(1500, "asset already listed")
	ErrNotListed      = errors.Register(1501, "asset not listed")
	ErrInvalidPrice   = errors.Register(1502, "invalid price")
	ErrNotAssetOwner  = errors.Register(1503, "not the asset owner")
	ErrNotAuthorized  = errors.Register(1504, "marketplace not authorized")
	ErrPriceNotMet    = errors.Register(1505, "price not met")
	ErrNoProceeds     = errors.Register(1506, "no proceeds")
	ErrTransferFailed = errors.Register(1507, "transfer failed")
	ErrReentrantCall  = errors.Register(1508, "reentrant call")
)
