package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/x"
)

const (
	listCost     int64 = 50
	changeCost   int64 = 10
	buyCost      int64 = 100
	withdrawCost int64 = 50
)

// RegisterRoutes registers all handlers of this package. Every message is
// executed on behalf of the main signer of the transaction.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ledger *Ledger) {
	r.Handle(pathList, &listHandler{auth: auth, ledger: ledger})
	r.Handle(pathCancel, &cancelHandler{auth: auth, ledger: ledger})
	r.Handle(pathUpdate, &updateHandler{auth: auth, ledger: ledger})
	r.Handle(pathBuy, &buyHandler{auth: auth, ledger: ledger})
	r.Handle(pathWithdraw, &withdrawHandler{auth: auth, ledger: ledger})
	r.Handle(UpdateConfigurationMsg{}.Path(),
		gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth))
}

func signer(ctx bazaar.Context, auth x.Authenticator) (bazaar.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return cond.Address(), nil
}

type listHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

func (h *listHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*ListMsg, bazaar.Address, error) {
	var msg ListMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	seller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, seller, nil
}

func (h *listHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: listCost}, nil
}

func (h *listHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, seller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.List(ctx, db, msg.Key, seller, *msg.Price); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: msg.Key.Bytes()}, nil
}

type cancelHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

func (h *cancelHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*CancelMsg, bazaar.Address, error) {
	var msg CancelMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

func (h *cancelHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: changeCost}, nil
}

func (h *cancelHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Cancel(ctx, db, msg.Key, caller); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

type updateHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

func (h *updateHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*UpdateMsg, bazaar.Address, error) {
	var msg UpdateMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

func (h *updateHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: changeCost}, nil
}

func (h *updateHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Update(ctx, db, msg.Key, caller, *msg.Price); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

type buyHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

func (h *buyHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*BuyMsg, bazaar.Address, error) {
	var msg BuyMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	buyer, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, buyer, nil
}

// Check only verifies the listing exists, so that mempool transactions
// buying sold assets are dropped early.
func (h *buyHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	msg, _, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	listing, err := h.ledger.Listing(db, msg.Key)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.Wrapf(ErrNotListed, "asset %s", msg.Key)
	}
	return &bazaar.CheckResult{GasAllocated: buyCost}, nil
}

func (h *buyHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, buyer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Buy(ctx, db, msg.Key, buyer, *msg.Payment); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

type withdrawHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

func (h *withdrawHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	var msg WithdrawMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := signer(ctx, h.auth); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver returns the released amount as the result data.
func (h *withdrawHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	var msg WithdrawMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	amount, err := h.ledger.Withdraw(ctx, db, caller)
	if err != nil {
		return nil, err
	}
	data, err := amount.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal amount")
	}
	return &bazaar.DeliverResult{Data: data}, nil
}
