package x

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
)

func TestAuth(t *testing.T) {
	a := bazaartest.NewCondition()
	b := bazaartest.NewCondition()
	c := bazaartest.NewCondition()

	ctxAuth := &bazaartest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		ctx          bazaar.Context
		auth         Authenticator
		mainSigner   bazaar.Condition
		wantInCtx    bazaar.Condition
		wantNotInCtx bazaar.Condition
		wantAll      []bazaar.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &bazaartest.Auth{},
			wantNotInCtx: b,
		},
		"single signer": {
			ctx:          context.Background(),
			auth:         &bazaartest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []bazaar.Condition{a},
		},
		"chained authenticators keep the order": {
			ctx: context.Background(),
			auth: ChainAuth(
				&bazaartest.Auth{Signer: b},
				&bazaartest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    a,
			wantNotInCtx: c,
			wantAll:      []bazaar.Condition{b, a},
		},
		"context authenticator": {
			ctx:          ctxAuth.SetConditions(context.Background(), c, a),
			auth:         ctxAuth,
			mainSigner:   c,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []bazaar.Condition{c, a},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil {
				if !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
					t.Fatal("address not authenticated")
				}
				if !HasAllConditions(tc.ctx, tc.auth, []bazaar.Condition{tc.wantInCtx}) {
					t.Fatal("condition not authenticated")
				}
			}
			if tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("unexpected address authenticated")
			}
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(tc.ctx))

			addrs := GetAddresses(tc.ctx, tc.auth)
			if !HasAllAddresses(tc.ctx, tc.auth, addrs) {
				t.Fatal("not all addresses authenticated")
			}
			if HasAllAddresses(tc.ctx, tc.auth, append(addrs, tc.wantNotInCtx.Address())) {
				t.Fatal("unknown address authenticated")
			}
		})
	}
}
