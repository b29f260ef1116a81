package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := bazaartest.NewCondition()

	cases := map[string]struct {
		// Init if provided is saved before running the handler.
		Init           ValidMarshaler
		Msg            bazaar.Msg
		MsgConditions  []bazaar.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantConfig     *myconfig
	}{
		"success": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, "XYZ")},
			},
			MsgConditions: []bazaar.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, "XYZ")},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 1, Cn: coin.NewCoin(4, "XYZ")},
			},
			MsgConditions:  []bazaar.Condition{bazaartest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(0, "IOV")},
			},
			MsgConditions: []bazaar.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(0, "IOV")},
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 123, Cn: coin.Coin{Amount: 4}},
			},
			MsgConditions:  []bazaar.Condition{cond},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
		"missing configuration cannot be updated": {
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(1, "IOV")},
			},
			MsgConditions:  []bazaar.Condition{cond},
			WantCheckErr:   errors.ErrNotFound,
			WantDeliverErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			var c myconfig
			auth := &bazaartest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg", &c, auth)

			ctx := bazaar.WithHeight(context.Background(), 999)
			ctx = bazaar.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &bazaartest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := handler.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = handler.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
