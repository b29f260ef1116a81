package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes registers all handlers of this package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, control BaseController) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
	r.Handle(SetBlockedMsg{}.Path(), NewSetBlockedHandler(auth, control))
}

// RegisterQuery registers the wallet bucket as "/wallets".
func RegisterQuery(qr bazaar.QueryRouter) {
	NewWalletBucket().Register("/wallets", qr)
}

// SendHandler moves coins between wallets.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bazaar.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check verifies the message is well formed and signed. Funds are not
// checked.
func (h SendHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the coins from source to destination.
func (h SendHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// SetBlockedHandler blocks or unblocks the wallet of the signer.
type SetBlockedHandler struct {
	auth    x.Authenticator
	control BaseController
}

var _ bazaar.Handler = SetBlockedHandler{}

func NewSetBlockedHandler(auth x.Authenticator, control BaseController) SetBlockedHandler {
	return SetBlockedHandler{auth: auth, control: control}
}

func (h SetBlockedHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h SetBlockedHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetBlocked(db, msg.Owner, msg.Blocked); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h SetBlockedHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*SetBlockedMsg, error) {
	var msg SetBlockedMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	return &msg, nil
}
