package bazaartest

import "github.com/iov-one/bazaar"

// Decorator is a mock implementation of the bazaar.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. Otherwise the wrapped handler is called. Each
// method call is counted.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by Check before calling the wrapped
	// handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by Deliver before calling the
	// wrapped handler.
	DeliverErr error
}

var _ bazaar.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls the decorator with the given
// handler as next.
func Decorate(h bazaar.Handler, d bazaar.Decorator) bazaar.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn bazaar.Handler
	dc bazaar.Decorator
}

func (d *decoratedHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
