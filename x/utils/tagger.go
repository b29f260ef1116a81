package utils

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ActionKey is the tag key holding the path of the executed message.
const ActionKey = "action"

// Tagger adds `action = msg.Path()` to the result of every successful
// Deliver, followed by the tags of all events emitted while delivering.
// Clients search and subscribe to transactions with those tags, for
// example market.event='bought'.
type Tagger struct{}

var _ bazaar.Decorator = Tagger{}

// NewTagger creates a Tagger decorator
func NewTagger() Tagger {
	return Tagger{}
}

// Check just passes the request along
func (Tagger) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the tags on success.
func (Tagger) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}

	events := bazaar.GetEventLog(ctx)
	mark := events.Mark()
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	for _, e := range events.Events()[mark:] {
		res.Tags = append(res.Tags, e.Tags()...)
	}
	return res, nil
}
