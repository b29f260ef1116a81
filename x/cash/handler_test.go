package cash

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestSendHandler(t *testing.T) {
	foo := coin.NewCoin(100, "FOO")
	some := coin.NewCoin(300, "SOME")

	perm := bazaartest.NewCondition()
	perm2 := bazaartest.NewCondition()

	cases := map[string]struct {
		signers     []bazaar.Condition
		initial     map[string]coin.Coin
		msg         bazaar.Msg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
	}{
		"no message": {
			wantCheck:   errors.ErrMsg,
			wantDeliver: errors.ErrMsg,
		},
		"empty amount": {
			msg:         &SendMsg{Source: perm.Address(), Destination: perm2.Address()},
			wantCheck:   errors.ErrAmount,
			wantDeliver: errors.ErrAmount,
		},
		"missing addresses": {
			msg:         &SendMsg{Amount: &foo},
			wantCheck:   errors.ErrInput,
			wantDeliver: errors.ErrInput,
		},
		"not signed by the source": {
			msg:         &SendMsg{Amount: &foo, Source: perm.Address(), Destination: perm2.Address()},
			wantCheck:   errors.ErrUnauthorized,
			wantDeliver: errors.ErrUnauthorized,
		},
		"sender has no account": {
			signers:     []bazaar.Condition{perm},
			msg:         &SendMsg{Amount: &foo, Source: perm.Address(), Destination: perm2.Address()},
			wantDeliver: errors.ErrEmpty,
		},
		"sender too poor": {
			signers:     []bazaar.Condition{perm},
			initial:     map[string]coin.Coin{string(perm.Address()): some},
			msg:         &SendMsg{Amount: &foo, Source: perm.Address(), Destination: perm2.Address()},
			wantDeliver: ErrInsufficientFunds,
		},
		"sender got cash": {
			signers: []bazaar.Condition{perm},
			initial: map[string]coin.Coin{string(perm.Address()): foo},
			msg:     &SendMsg{Amount: &foo, Source: perm.Address(), Destination: perm2.Address()},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &bazaartest.Auth{Signers: tc.signers}
			ctrl := NewController(NewWalletBucket())
			h := NewSendHandler(auth, ctrl)

			kv := store.MemStore()
			for addr, c := range tc.initial {
				require.NoError(t, ctrl.IssueCoins(kv, bazaar.Address(addr), c))
			}

			tx := &bazaartest.Tx{Msg: tc.msg}
			_, err := h.Check(context.Background(), kv.CacheWrap(), tx)
			assert.True(t, tc.wantCheck.Is(err), "check: %+v", err)
			_, err = h.Deliver(context.Background(), kv, tx)
			assert.True(t, tc.wantDeliver.Is(err), "deliver: %+v", err)

			if tc.wantDeliver == nil {
				bal, err := ctrl.Balance(kv, perm2.Address(), foo.Ticker)
				require.NoError(t, err)
				assert.Equal(t, foo, bal)
			}
		})
	}
}

func TestSetBlockedHandler(t *testing.T) {
	owner := bazaartest.NewCondition()
	ctrl := NewController(NewWalletBucket())
	kv := store.MemStore()

	r := &routes{handlers: map[string]bazaar.Handler{}}
	RegisterRoutes(r, &bazaartest.Auth{Signer: owner}, ctrl)

	h := r.handlers["cash/set_blocked"]
	require.NotNil(t, h)

	tx := &bazaartest.Tx{Msg: &SetBlockedMsg{Owner: owner.Address(), Blocked: true}}
	_, err := h.Deliver(context.Background(), kv, tx)
	require.NoError(t, err)

	err = ctrl.IssueCoins(kv, owner.Address(), coin.NewCoin(1, "IOV"))
	assert.True(t, ErrBlocked.Is(err))

	stranger := &SetBlockedMsg{Owner: bazaartest.NewAddress(), Blocked: true}
	_, err = h.Deliver(context.Background(), kv, &bazaartest.Tx{Msg: stranger})
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestSendMsgJSON(t *testing.T) {
	src, dst := bazaartest.NewAddress(), bazaartest.NewAddress()
	raw, err := json.Marshal(&SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(5, "IOV")})
	require.NoError(t, err)

	var got SendMsg
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, src, got.Source)
	assert.Equal(t, int64(5), got.Amount.Amount)
	assert.NoError(t, got.Validate())
}

type routes struct {
	handlers map[string]bazaar.Handler
}

func (r *routes) Handle(path string, h bazaar.Handler) {
	r.handlers[path] = h
}
