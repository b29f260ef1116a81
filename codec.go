package bazaar

import (
	"github.com/iov-one/bazaar/errors"
	amino "github.com/tendermint/go-amino"
)

// modelCodec serializes the persisted models. Models do not carry
// interface fields, so no type registration is required.
var modelCodec = amino.NewCodec()

// MarshalBinary returns the binary representation of a model.
func MarshalBinary(o interface{}) ([]byte, error) {
	raw, err := modelCodec.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", o, err)
	}
	return raw, nil
}

// UnmarshalBinary decodes the binary representation of a model into the
// destination, which must be a pointer.
func UnmarshalBinary(raw []byte, dest interface{}) error {
	if err := modelCodec.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
