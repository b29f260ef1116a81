package bazaartest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/bazaar"
)

var counter uint64

// SequenceID returns the big endian representation of the given value.
func SequenceID(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// NewCondition returns a condition that was never returned before by this
// function.
func NewCondition() bazaar.Condition {
	n := atomic.AddUint64(&counter, 1)
	return bazaar.NewCondition("test", "seq", SequenceID(n))
}

// NewAddress returns the address of a fresh condition.
func NewAddress() bazaar.Address {
	return NewCondition().Address()
}

// ParseAddress decodes a human readable address or fails the test.
func ParseAddress(t testing.TB, encoded string) bazaar.Address {
	t.Helper()
	addr, err := bazaar.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}
