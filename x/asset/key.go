package asset

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const maxIDLength = 64

// Key identifies a single token: the address of the collection that
// issued it and its id within that collection.
type Key struct {
	Registry bazaar.Address `json:"registry"`
	ID       []byte         `json:"id"`
}

// NewKey returns the key of the given token.
func NewKey(registry bazaar.Address, id []byte) Key {
	return Key{Registry: registry, ID: id}
}

// Validate ensures both parts are present.
func (k Key) Validate() error {
	if err := k.Registry.Validate(); err != nil {
		return errors.Wrap(ErrInvalidKey, err.Error())
	}
	if len(k.ID) == 0 || len(k.ID) > maxIDLength {
		return errors.Wrapf(ErrInvalidKey, "id length %d", len(k.ID))
	}
	return nil
}

// Bytes returns the binary representation of the key: the registry
// address length, the registry address and the id. Two distinct keys never
// share a representation.
func (k Key) Bytes() []byte {
	raw := make([]byte, 0, 1+len(k.Registry)+len(k.ID))
	raw = append(raw, uint8(len(k.Registry)))
	raw = append(raw, k.Registry...)
	return append(raw, k.ID...)
}

// ParseKeyBytes decodes a key encoded by Bytes.
func ParseKeyBytes(raw []byte) (Key, error) {
	if len(raw) == 0 {
		return Key{}, errors.Wrap(ErrInvalidKey, "empty")
	}
	n := int(raw[0])
	if len(raw) < 1+n {
		return Key{}, errors.Wrap(ErrInvalidKey, "too short")
	}
	k := Key{
		Registry: append(bazaar.Address{}, raw[1:1+n]...),
		ID:       append([]byte{}, raw[1+n:]...),
	}
	return k, k.Validate()
}

// Equals returns true if both keys point to the same token.
func (k Key) Equals(o Key) bool {
	return k.Registry.Equals(o.Registry) && string(k.ID) == string(o.ID)
}

// String returns the "<registry>/<hex id>" representation.
func (k Key) String() string {
	return k.Registry.String() + "/" + strings.ToUpper(hex.EncodeToString(k.ID))
}

// ParseKey decodes the representation produced by String. The registry
// part accepts every address format.
func ParseKey(s string) (Key, error) {
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return Key{}, errors.Wrapf(ErrInvalidKey, "missing separator in %q", s)
	}
	registry, err := bazaar.ParseAddress(s[:i])
	if err != nil {
		return Key{}, errors.Wrap(ErrInvalidKey, err.Error())
	}
	id, err := hex.DecodeString(s[i+1:])
	if err != nil {
		return Key{}, errors.Wrap(ErrInvalidKey, "id is not hex encoded")
	}
	k := Key{Registry: registry, ID: id}
	return k, k.Validate()
}

// UnmarshalJSON accepts both the string representation and the object
// form.
func (k *Key) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, err := ParseKey(s)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}
	var obj struct {
		Registry bazaar.Address `json:"registry"`
		ID       []byte         `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(ErrInvalidKey, "cannot decode json")
	}
	*k = Key{Registry: obj.Registry, ID: obj.ID}
	return nil
}
