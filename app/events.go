package app

import (
	"context"
	"strconv"

	"github.com/tendermint/tendermint/libs/log"
	tmpubsub "github.com/tendermint/tendermint/libs/pubsub"
	tmquery "github.com/tendermint/tendermint/libs/pubsub/query"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// HeightTag is attached to every published event and holds the height of
// the block that committed it.
const HeightTag = "tx.height"

// CommittedEvent is the message delivered to subscribers.
type CommittedEvent struct {
	Height int64
	Event  bazaar.Event
}

// EventBus publishes events of committed transactions to subscribers.
// Subscribers select events with a tendermint query over event tags, for
// example "market.event='bought' AND market.seller='A1B2...'".
type EventBus struct {
	server *tmpubsub.Server
}

// NewEventBus returns a bus that buffers up to capacity pending
// publications. The bus must be started before it delivers anything.
func NewEventBus(capacity int) *EventBus {
	return &EventBus{
		server: tmpubsub.NewServer(tmpubsub.BufferCapacity(capacity)),
	}
}

// SetLogger sets the logger of the dispatch loop.
func (b *EventBus) SetLogger(l log.Logger) {
	b.server.SetLogger(l)
}

// Start runs the bus dispatch loop.
func (b *EventBus) Start() error {
	return b.server.Start()
}

// Stop terminates all subscriptions.
func (b *EventBus) Stop() error {
	return b.server.Stop()
}

// Subscribe returns a subscription receiving all events matching the
// query. Capacity is the size of the subscription channel, a slow
// subscriber whose channel is full is cancelled.
func (b *EventBus) Subscribe(ctx context.Context, subscriber, query string, capacity int) (*tmpubsub.Subscription, error) {
	q, err := tmquery.New(query)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "query %q: %s", query, err)
	}
	if capacity < 1 {
		capacity = 1
	}
	sub, err := b.server.Subscribe(ctx, subscriber, q, capacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return sub, nil
}

// Unsubscribe cancels all subscriptions of the subscriber.
func (b *EventBus) Unsubscribe(ctx context.Context, subscriber string) error {
	return b.server.UnsubscribeAll(ctx, subscriber)
}

// publish sends all events, in order, tagged with the block height. A nil
// or stopped bus silently drops them.
func (b *EventBus) publish(ctx context.Context, height int64, events []bazaar.Event) error {
	if b == nil || !b.server.IsRunning() {
		return nil
	}
	for _, e := range events {
		tags := map[string]string{
			HeightTag: strconv.FormatInt(height, 10),
		}
		for _, t := range e.Tags() {
			tags[string(t.Key)] = string(t.Value)
		}
		msg := CommittedEvent{Height: height, Event: e}
		if err := b.server.PublishWithTags(ctx, msg, tags); err != nil {
			return errors.Wrapf(errors.ErrState, "publish %s: %s", e.Path(), err)
		}
	}
	return nil
}
