package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// maxSequence is the greatest nonce that clients can represent exactly,
// 2^53-1.
const maxSequence = (1 << 53) - 1

// UserData holds the replay protection state of a single key.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return bazaar.MarshalBinary(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return bazaar.UnmarshalBinary(raw, u)
}

// Validate ensures the user state is consistent.
func (u *UserData) Validate() error {
	var errs error
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	if u.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	} else if err := u.Pubkey.Validate(); err != nil {
		errs = errors.AppendField(errs, "Pubkey", err)
	}
	return errs
}

// CheckAndIncrementSequence increments the sequence if it equals the
// expected value. Otherwise an error is returned and the state is left
// untouched.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewUserBucket returns the bucket storing UserData keyed by the address of
// the public key.
func NewUserBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs", &UserData{})
}

// loadOrCreate returns the stored state of the key or a fresh one with
// sequence zero.
func loadOrCreate(db bazaar.ReadOnlyKVStore, b orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, errors.Wrap(err, "cannot load user")
	}
}

// RegisterQuery exposes the user state under the "/auth" path.
func RegisterQuery(qr bazaar.QueryRouter) {
	NewUserBucket().Register("/auth", qr)
}
