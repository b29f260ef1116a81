package main

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/market"
)

func TestExtractResponse(t *testing.T) {
	key := asset.NewKey(fromHex(t, registryHex), []byte{0, 1})
	released, err := coin.NewCoin(250, "IOV").Marshal()
	if err != nil {
		t.Fatalf("cannot marshal coin: %s", err)
	}

	cases := map[string]struct {
		msg     bazaar.Msg
		data    []byte
		want    string
		wantErr bool
	}{
		"minted token key": {
			msg:  &asset.MintMsg{},
			data: key.Bytes(),
			want: key.String(),
		},
		"created collection address": {
			msg:  &asset.CreateCollectionMsg{},
			data: fromHex(t, registryHex),
			want: registryHex,
		},
		"released proceeds": {
			msg:  &market.WithdrawMsg{},
			data: released,
			want: "250 IOV",
		},
		"no formatter": {
			msg:  &market.BuyMsg{},
			data: []byte("ignored"),
			want: "",
		},
		"malformed key": {
			msg:     &market.ListMsg{},
			data:    []byte{42},
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := extractResponse(tc.msg, tc.data, formatters)
			if tc.wantErr != (err != nil) {
				t.Fatalf("unexpected error: %v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
