package bazaar

import (
	"context"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a state change, signaled to external
// observers once the transaction that produced it is committed.
type Event interface {
	// Path names the event kind, for example "market/listed".
	Path() string

	// Tags returns the indexable representation of the event.
	Tags() []common.KVPair
}

// EventLog collects the events emitted while processing a single
// transaction. It is not safe for concurrent use, transactions are
// processed one at a time.
type EventLog struct {
	events []Event
}

// WithEventLog attaches a fresh event log to the context. All events
// emitted using the returned context are appended to the returned log.
func WithEventLog(ctx Context) (Context, *EventLog) {
	l := &EventLog{}
	return context.WithValue(ctx, contextKeyEventLog, l), l
}

// GetEventLog returns the event log carried by the context or nil.
func GetEventLog(ctx Context) *EventLog {
	l, _ := ctx.Value(contextKeyEventLog).(*EventLog)
	return l
}

// Emit appends the event to the log carried by the context. It is a no-op
// when the context carries no log.
func Emit(ctx Context, e Event) {
	if l := GetEventLog(ctx); l != nil {
		l.events = append(l.events, e)
	}
}

// Events returns all events emitted so far, in emission order.
func (l *EventLog) Events() []Event {
	if l == nil {
		return nil
	}
	return l.events
}

// Mark returns a position that Rollback can return to.
func (l *EventLog) Mark() int {
	if l == nil {
		return 0
	}
	return len(l.events)
}

// Rollback drops all events emitted after the mark was taken.
func (l *EventLog) Rollback(mark int) {
	if l == nil || mark >= len(l.events) {
		return
	}
	for i := mark; i < len(l.events); i++ {
		l.events[i] = nil
	}
	l.events = l.events[:mark]
}

// Tags flattens the tags of all collected events.
func (l *EventLog) Tags() []common.KVPair {
	var tags []common.KVPair
	for _, e := range l.Events() {
		tags = append(tags, e.Tags()...)
	}
	return tags
}
