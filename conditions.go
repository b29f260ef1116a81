package bazaar

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/bazaar/crypto/bech32"
	"github.com/iov-one/bazaar/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = 20

// The (?s) flag is required, otherwise data containing a newline byte does
// not match.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who can authorize an action. It is of the format
//
//   sprintf("%s/%s/%s", extension, type, data)
//
// Public keys, collections and the marketplace itself are all represented
// by conditions. Only the address derived from a condition is stored.
type Condition []byte

// NewCondition builds a condition out of its three parts.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse extracts the sections from the condition bytes and verifies
// that it is properly formatted.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	chunks := conditionFormat.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address returns the address this condition controls.
func (c Condition) Address() Address {
	return NewAddress(c)
}

// Equals checks if two conditions are the same.
func (c Condition) Equals(other Condition) bool {
	return bytes.Equal(c, other)
}

// String keeps the extension and the type in ascii and hex-encodes the
// data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the condition is not properly formatted.
func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	var s string
	if c != nil {
		s = c.String()
	}
	return json.Marshal(s)
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the human readable form produced by String.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	chunks := strings.SplitN(s, "/", 3)
	if len(chunks) != 3 {
		return nil, errors.Wrap(errors.ErrInput, "invalid condition format")
	}
	data, err := hex.DecodeString(chunks[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed condition data: %s", err)
	}
	c := NewCondition(chunks[0], chunks[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Address is a collision-free, one-way digest of a Condition. It
// identifies sellers, buyers, registries and the marketplace account.
type Address []byte

// NewAddress hashes and truncates the data into the address length.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// String returns the upper case hex representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Validate returns an error if the address is not of the valid size.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", []byte(a))
	}
	return nil
}

// MarshalJSON provides a hex representation instead of the default
// base64 encoding of a byte slice.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts an optional format prefix. Supported formats are
//
//   hex:<hex encoded address>          (default when no prefix is given)
//   cond:<ext>/<type>/<hex data>       (condition the address derives from)
//   bech32:<bech32 encoded address>
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes the textual address representation as accepted by
// UnmarshalJSON. An empty value returns a nil address.
func ParseAddress(s string) (Address, error) {
	format, enc := "hex", s
	if chunks := strings.SplitN(s, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}
	if enc == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = raw
	case "cond":
		c, err := parseCondition(enc)
		if err != nil {
			return nil, err
		}
		addr = c.Address()
	case "bech32":
		_, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, err
		}
		addr = payload
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
