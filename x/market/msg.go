package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathList     = "market/list"
	pathCancel   = "market/cancel"
	pathUpdate   = "market/update"
	pathBuy      = "market/buy"
	pathWithdraw = "market/withdraw"
)

// ListMsg lists an asset of the signer for sale.
type ListMsg struct {
	Key   AssetKey   `json:"key"`
	Price *coin.Coin `json:"price"`
}

var _ bazaar.Msg = (*ListMsg)(nil)

func (ListMsg) Path() string { return pathList }

func (m *ListMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", m.Key.Validate())
	errs = errors.AppendField(errs, "Price", validPricep(m.Price))
	return errs
}

// CancelMsg removes a listing of the signer.
type CancelMsg struct {
	Key AssetKey `json:"key"`
}

var _ bazaar.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string { return pathCancel }

func (m *CancelMsg) Validate() error {
	return errors.AppendField(nil, "Key", m.Key.Validate())
}

// UpdateMsg changes the price of a listing of the signer.
type UpdateMsg struct {
	Key   AssetKey   `json:"key"`
	Price *coin.Coin `json:"price"`
}

var _ bazaar.Msg = (*UpdateMsg)(nil)

func (UpdateMsg) Path() string { return pathUpdate }

func (m *UpdateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", m.Key.Validate())
	errs = errors.AppendField(errs, "Price", validPricep(m.Price))
	return errs
}

// BuyMsg buys a listed asset for the signer. Payment is taken from the
// signer wallet.
type BuyMsg struct {
	Key     AssetKey   `json:"key"`
	Payment *coin.Coin `json:"payment"`
}

var _ bazaar.Msg = (*BuyMsg)(nil)

func (BuyMsg) Path() string { return pathBuy }

func (m *BuyMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", m.Key.Validate())
	if coin.IsEmpty(m.Payment) {
		errs = errors.AppendField(errs, "Payment", errors.Wrap(errors.ErrAmount, "required"))
	} else {
		errs = errors.AppendField(errs, "Payment", m.Payment.Validate())
	}
	return errs
}

// WithdrawMsg releases all proceeds of the signer.
type WithdrawMsg struct{}

var _ bazaar.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string { return pathWithdraw }

func (*WithdrawMsg) Validate() error { return nil }

func validPricep(p *coin.Coin) error {
	if p == nil {
		return errors.Wrap(ErrInvalidPrice, "required")
	}
	return validPrice(*p)
}
