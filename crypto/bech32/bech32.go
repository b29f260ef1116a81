// Package bech32 converts payloads such as addresses to and from the
// checksummed bech32 text form accepted by the "bech32:" address prefix.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/bazaar/errors"
)

// Decode returns the human readable part and the payload of a bech32
// string. Malformed input is an ErrInput.
func Decode(raw string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "bech32 %q: %s", raw, err)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "bech32 %q payload: %s", raw, err)
	}
	return hrp, payload, nil
}

// Encode returns the bech32 form of payload under the given human readable
// part.
func Encode(hrp string, payload []byte) (string, error) {
	if hrp == "" {
		return "", errors.Wrap(errors.ErrInput, "empty human readable part")
	}
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	raw, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return raw, nil
}
