/*
Package coin implements integer currency amounts.

A Coin is an amount of the smallest indivisible unit of a currency
identified by its ticker. All arithmetic is checked and fails instead of
overflowing.
*/
package coin

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// IsCC is the RegExp to ensure valid currency codes.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt is the largest amount we accept.
	MaxInt int64 = 999999999999999999 // 10^18-1
	// MinInt is the lowest amount we accept.
	MinInt = -MaxInt
)

// Coin is an amount of a single currency.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount int64  `json:"amount"`
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Marshal implements bazaar.Persistent.
func (c *Coin) Marshal() ([]byte, error) {
	return bazaar.MarshalBinary(c)
}

// Unmarshal implements bazaar.Persistent.
func (c *Coin) Unmarshal(raw []byte) error {
	return bazaar.UnmarshalBinary(raw, c)
}

// Add combines two coins. It fails if they are of different currencies or
// if the result would overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	// A coin without a ticker and with no value has no influence on the
	// result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if !inRange(c.Amount) || !inRange(o.Amount) {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	sum := c.Amount + o.Amount
	if sum < MinInt || sum > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

func inRange(n int64) bool {
	return n >= MinInt && n <= MaxInt
}

// Negative returns the opposite coin value.
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Amount: -c.Amount}
}

// Subtract the given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare checks the values of two coins, without inspecting the currency
// code. Returns 1 if c is larger, -1 if o is larger, 0 if equal.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on nil or zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true if the amount is 0.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the value is 0 or higher.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is of the same currency and at least as large
// as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if both coins are of the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate ensures that the coin is in the valid range and has a valid
// currency code. Negative values are accepted, business logic must check
// the sign where it matters.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.AppendField(err, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker))
	}
	if !inRange(c.Amount) {
		err = errors.AppendField(err, "Amount", errors.ErrOverflow)
	}
	return err
}

// String returns the human readable format "<amount> <ticker>".
func (c Coin) String() string {
	s := strconv.FormatInt(c.Amount, 10)
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

var humanCoinFormat = regexp.MustCompile(`^\s*(-?\d+)\s*([A-Z]{3,4})\s*$`)

// ParseHumanFormat parses a human readable coin representation. Accepted
// format is a string
//   "<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormat.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount: %s", err)
	}
	c := Coin{Ticker: m[2], Amount: amount}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

// UnmarshalJSON accepts both the human readable format and the object
// representation.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Coin cannot be used here as it would call this method again.
	var obj struct {
		Ticker string `json:"ticker"`
		Amount int64  `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode coin")
	}
	*c = Coin{Ticker: obj.Ticker, Amount: obj.Amount}
	return nil
}
