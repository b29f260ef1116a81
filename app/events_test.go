package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

type testEvent struct {
	kind string
	name string
}

func (e testEvent) Path() string { return "test/" + e.kind }

func (e testEvent) Tags() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("test.kind"), Value: []byte(e.kind)},
		{Key: []byte("test.name"), Value: []byte(e.name)},
	}
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus(10)
	require.NoError(t, bus.Start())
	defer bus.Stop()

	ctx := context.Background()
	sub, err := bus.Subscribe(ctx, "tester", "test.kind='sold'", 5)
	require.NoError(t, err)

	_, err = bus.Subscribe(ctx, "tester", "test.kind=", 5)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	events := []bazaar.Event{
		testEvent{kind: "listed", name: "a"},
		testEvent{kind: "sold", name: "b"},
		testEvent{kind: "sold", name: "c"},
	}
	require.NoError(t, bus.publish(ctx, 7, events))

	for _, want := range []string{"b", "c"} {
		select {
		case msg := <-sub.Out():
			ev, ok := msg.Data().(CommittedEvent)
			require.True(t, ok)
			assert.Equal(t, int64(7), ev.Height)
			assert.Equal(t, testEvent{kind: "sold", name: want}, ev.Event)
			height, ok := msg.Tags()[HeightTag]
			assert.True(t, ok)
			assert.Equal(t, "7", height)
		case <-time.After(time.Second):
			t.Fatalf("event %q not delivered", want)
		}
	}

	require.NoError(t, bus.Unsubscribe(ctx, "tester"))
}

func TestEventBusNotRunning(t *testing.T) {
	var missing *EventBus
	assert.NoError(t, missing.publish(context.Background(), 1, []bazaar.Event{testEvent{}}))

	stopped := NewEventBus(0)
	assert.NoError(t, stopped.publish(context.Background(), 1, []bazaar.Event{testEvent{}}))
}
