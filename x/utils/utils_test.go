package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

type testEvent struct{ name string }

func (testEvent) Path() string { return "test/event" }

func (e testEvent) Tags() []common.KVPair {
	return []common.KVPair{{Key: []byte("test.event"), Value: []byte(e.name)}}
}

// emitHandler emits an event and then calls the wrapped handler.
type emitHandler struct {
	bazaar.Handler
	event bazaar.Event
}

func (h emitHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	bazaar.Emit(ctx, h.event)
	return h.Handler.Check(ctx, db, tx)
}

func (h emitHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	bazaar.Emit(ctx, h.event)
	return h.Handler.Deliver(ctx, db, tx)
}

func TestSavepoint(t *testing.T) {
	key, value := []byte("listing"), []byte("sold")
	failure := errors.Wrap(errors.ErrState, "handler failed")

	cases := map[string]struct {
		savepoint  Savepoint
		handlerErr error
		check      bool
		wantStored bool
		wantEvents int
	}{
		"disabled, failure is kept": {
			savepoint:  NewSavepoint(),
			handlerErr: failure,
			check:      true,
			wantStored: true,
			wantEvents: 1,
		},
		"check failure is rolled back": {
			savepoint:  NewSavepoint().OnCheck(),
			handlerErr: failure,
			check:      true,
			wantStored: false,
			wantEvents: 0,
		},
		"deliver savepoint ignores check": {
			savepoint:  NewSavepoint().OnDeliver(),
			handlerErr: failure,
			check:      true,
			wantStored: true,
			wantEvents: 1,
		},
		"deliver failure is rolled back": {
			savepoint:  NewSavepoint().OnDeliver().OnCheck(),
			handlerErr: failure,
			check:      false,
			wantStored: false,
			wantEvents: 0,
		},
		"success is written": {
			savepoint:  NewSavepoint().OnDeliver(),
			check:      false,
			wantStored: true,
			wantEvents: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx, events := bazaar.WithEventLog(context.Background())
			h := bazaartest.Decorate(emitHandler{
				Handler: bazaartest.WriteHandler{Key: key, Value: value, Err: tc.handlerErr},
				event:   testEvent{name: "x"},
			}, tc.savepoint)

			var err error
			if tc.check {
				_, err = h.Check(ctx, db, &bazaartest.Tx{})
			} else {
				_, err = h.Deliver(ctx, db, &bazaartest.Tx{})
			}
			if tc.handlerErr != nil {
				assert.True(t, errors.ErrState.Is(err), "%+v", err)
			} else {
				assert.NoError(t, err)
			}

			stored, err := db.Has(key)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStored, stored)
			assert.Len(t, events.Events(), tc.wantEvents)
		})
	}
}

func TestRecovery(t *testing.T) {
	h := bazaartest.Decorate(bazaartest.PanicHandler{Msg: "boom"}, NewRecovery())
	db := store.MemStore()

	_, err := h.Check(context.Background(), db, &bazaartest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err), "%+v", err)
	_, err = h.Deliver(context.Background(), db, &bazaartest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err), "%+v", err)
}

func TestTagger(t *testing.T) {
	db := store.MemStore()
	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "market/buy"}}

	t.Run("success adds action and event tags", func(t *testing.T) {
		ctx, events := bazaar.WithEventLog(context.Background())
		bazaar.Emit(ctx, testEvent{name: "earlier"})
		h := bazaartest.Decorate(&bazaartest.Handler{Emit: testEvent{name: "bought"}}, NewTagger())

		res, err := h.Deliver(ctx, db, tx)
		require.NoError(t, err)
		assert.Equal(t, []common.KVPair{
			{Key: []byte(ActionKey), Value: []byte("market/buy")},
			{Key: []byte("test.event"), Value: []byte("bought")},
		}, res.Tags)
		assert.Len(t, events.Events(), 2)
	})

	t.Run("failure adds nothing", func(t *testing.T) {
		ctx, _ := bazaar.WithEventLog(context.Background())
		h := bazaartest.Decorate(&bazaartest.Handler{DeliverErr: errors.ErrState}, NewTagger())
		res, err := h.Deliver(ctx, db, tx)
		assert.True(t, errors.ErrState.Is(err))
		assert.Nil(t, res)
	})

	t.Run("check is untouched", func(t *testing.T) {
		h := bazaartest.Decorate(&bazaartest.Handler{CheckResult: bazaar.CheckResult{GasAllocated: 7}}, NewTagger())
		res, err := h.Check(context.Background(), db, tx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), res.GasAllocated)
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := bazaar.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	db := store.MemStore()
	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "market/list"}}

	h := bazaartest.Decorate(&bazaartest.Handler{DeliverErr: errors.Wrap(errors.ErrState, "nope")}, NewLogging())
	_, err := h.Deliver(ctx, db, tx)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "path=market/list")
	assert.Contains(t, buf.String(), "err=")

	buf.Reset()
	h = bazaartest.Decorate(&bazaartest.Handler{DeliverResult: bazaar.DeliverResult{Log: "listed"}}, NewLogging())
	_, err = h.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "listed")
	assert.NotContains(t, buf.String(), "err=")
}

