package app

import (
	"context"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// BaseApp adds DeliverTx, CheckTx and event publishing to the storage and
// query functionality of StoreApp.
//
// Events emitted by a successful DeliverTx are held until the block is
// committed and only then published on the event bus. Events of failed
// transactions are dropped.
type BaseApp struct {
	*StoreApp
	decoder bazaar.TxDecoder
	handler bazaar.Handler
	bus     *EventBus

	pending []bazaar.Event
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp constructs a basic abci application. The bus may be nil.
func NewBaseApp(
	store *StoreApp,
	decoder bazaar.TxDecoder,
	handler bazaar.Handler,
	bus *EventBus,
	debug bool,
) *BaseApp {
	store.debug = debug
	return &BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		bus:      bus,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b *BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return DeliverTxError(err, b.debug)
	}

	ctx, events := bazaar.WithEventLog(b.BlockContext())
	ctx = bazaar.WithLogInfo(ctx,
		"call", "deliver_tx",
		"path", bazaar.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err == nil {
		b.pending = append(b.pending, events.Events()...)
	}
	return DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b *BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return CheckTxError(err, b.debug)
	}

	ctx := bazaar.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", bazaar.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return CheckOrError(res, err, b.debug)
}

// BeginBlock - ABCI
func (b *BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	b.pending = nil
	return b.StoreApp.BeginBlock(req)
}

// Commit - ABCI - persists the block state and publishes the events of
// all transactions it contains.
func (b *BaseApp) Commit() abci.ResponseCommit {
	res := b.StoreApp.Commit()

	height, _ := bazaar.GetHeight(b.BlockContext())
	events := b.pending
	b.pending = nil
	if err := b.bus.publish(context.Background(), height, events); err != nil {
		b.Logger().Error("cannot publish events", "height", height, "err", err)
	}
	return res
}

// loadTx calls the decoder, and capture any panics
func (b *BaseApp) loadTx(txBytes []byte) (tx bazaar.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
