package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const (
	sendTxCost  int64 = 100
	maxMemoSize int   = 128
)

// SendMsg moves coins from the source wallet to the destination.
type SendMsg struct {
	Source      bazaar.Address `json:"source"`
	Destination bazaar.Address `json:"destination"`
	Amount      *coin.Coin     `json:"amount"`
	Memo        string         `json:"memo,omitempty"`
}

var _ bazaar.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var errs error
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// SetBlockedMsg changes whether the wallet of the signer accepts
// incoming transfers.
type SetBlockedMsg struct {
	Owner   bazaar.Address `json:"owner"`
	Blocked bool           `json:"blocked"`
}

var _ bazaar.Msg = (*SetBlockedMsg)(nil)

func (SetBlockedMsg) Path() string {
	return "cash/set_blocked"
}

func (m *SetBlockedMsg) Validate() error {
	return errors.AppendField(nil, "Owner", m.Owner.Validate())
}
