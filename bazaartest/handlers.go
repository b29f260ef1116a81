package bazaartest

import "github.com/iov-one/bazaar"

// Handler is a mock implementation of the bazaar.Handler interface. It
// counts the calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult bazaar.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult bazaar.DeliverResult
	DeliverErr    error

	// Emit if set is emitted on every Deliver call.
	Emit bazaar.Event
}

var _ bazaar.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	h.deliverCall++
	if h.Emit != nil {
		bazaar.Emit(ctx, h.Emit)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key and value on every call and then returns
// the configured error.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ bazaar.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, h.Err
}

func (h WriteHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, h.Err
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.DeliverResult, error) {
	panic(h.Msg)
}
