/*
Package asset implements a registry of non fungible tokens.

Tokens are grouped in collections. Every collection has an address that
acts as the registry address of its tokens, so a token is identified by a
Key made of the collection address and the token id. The owner of a token
can approve a single address to transfer it, or allow an operator to
manage all of its tokens within a collection.
*/
package asset

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

const (
	createCollectionCost int64 = 100
	mintCost             int64 = 50
	changeCost           int64 = 10
)

// RegisterRoutes registers all handlers of this package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, reg *Registry) {
	r.Handle(pathCreateCollection, &createCollectionHandler{auth: auth, reg: reg})
	r.Handle(pathMint, &mintHandler{auth: auth, reg: reg})
	r.Handle(pathApprove, &approveHandler{auth: auth, reg: reg})
	r.Handle(pathSetOperator, &setOperatorHandler{auth: auth, reg: reg})
	r.Handle(pathTransfer, &transferHandler{auth: auth, reg: reg})
}

type createCollectionHandler struct {
	auth x.Authenticator
	reg  *Registry
}

func (h *createCollectionHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*CreateCollectionMsg, error) {
	var msg CreateCollectionMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

func (h *createCollectionHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: createCollectionCost}, nil
}

func (h *createCollectionHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.reg.CreateCollection(db, msg.Owner, msg.Name)
	if err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: addr}, nil
}

type mintHandler struct {
	auth x.Authenticator
	reg  *Registry
}

func (h *mintHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	c, err := h.reg.Collection(db, msg.Collection)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, c.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "collection owner signature missing")
	}
	return &msg, nil
}

func (h *mintHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: mintCost}, nil
}

func (h *mintHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.reg.Mint(db, msg.Collection, msg.ID, msg.Owner, msg.URI)
	if err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: key.Bytes()}, nil
}

type approveHandler struct {
	auth x.Authenticator
	reg  *Registry
}

func (h *approveHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	var msg ApproveMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bazaar.CheckResult{GasAllocated: changeCost}, nil
}

func (h *approveHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	var msg ApproveMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	if err := h.reg.Approve(db, caller.Address(), msg.Key, msg.Approved); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

type setOperatorHandler struct {
	auth x.Authenticator
	reg  *Registry
}

func (h *setOperatorHandler) validate(ctx bazaar.Context, tx bazaar.Tx) (*SetOperatorMsg, error) {
	var msg SetOperatorMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

func (h *setOperatorHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{GasAllocated: changeCost}, nil
}

func (h *setOperatorHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.reg.SetOperator(db, msg.Collection, msg.Owner, msg.Operator, msg.Approved); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

type transferHandler struct {
	auth x.Authenticator
	reg  *Registry
}

func (h *transferHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	var msg TransferMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bazaar.CheckResult{GasAllocated: changeCost}, nil
}

func (h *transferHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	var msg TransferMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	operator := x.MainSigner(ctx, h.auth)
	if operator == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	if err := h.reg.TransferFrom(ctx, db, operator.Address(), msg.From, msg.To, msg.Key); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}
