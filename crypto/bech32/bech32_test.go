package bech32

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
)

func TestDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`
	payload, err := hex.DecodeString("746573742d7061796c6f6164")
	assert.Nil(t, err)

	cases := map[string]struct {
		raw         string
		wantHRP     string
		wantPayload []byte
		wantErr     *errors.Error
	}{
		"valid": {
			raw:         enc,
			wantHRP:     "tiov",
			wantPayload: payload,
		},
		"upper case is accepted": {
			raw:         strings.ToUpper(enc),
			wantHRP:     "tiov",
			wantPayload: payload,
		},
		"mixed case": {
			raw:     "T" + enc[1:],
			wantErr: errors.ErrInput,
		},
		"bad checksum": {
			raw:     enc[:len(enc)-1] + "z",
			wantErr: errors.ErrInput,
		},
		"no separator": {
			raw:     "tiovw3jhxapdwpshjmr0v9jqymqq4y",
			wantErr: errors.ErrInput,
		},
		"empty": {
			raw:     "",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			hrp, got, err := Decode(tc.raw)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantHRP, hrp)
			assert.Equal(t, tc.wantPayload, got)
		})
	}
}

func TestEncodeAddress(t *testing.T) {
	addr, err := hex.DecodeString("B1CA7E78F74423AE01DA3B51E676934D9105F282")
	assert.Nil(t, err)

	raw, err := Encode("iov", addr)
	assert.Nil(t, err)
	if !strings.HasPrefix(raw, "iov1") {
		t.Fatalf("unexpected encoding %q", raw)
	}

	hrp, got, err := Decode(raw)
	assert.Nil(t, err)
	assert.Equal(t, "iov", hrp)
	assert.Equal(t, addr, got)

	_, err = Encode("", addr)
	assert.IsErr(t, errors.ErrInput, err)
}
