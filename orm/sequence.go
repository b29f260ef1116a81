package orm

import (
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Sequence maintains a counter and generates a series of keys. Each key is
// greater than the last, both as an integer and compared with
// bytes.Compare.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter stored under
//
//   _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db bazaar.KVStore) ([]byte, error) {
	_, raw, err := s.increment(db, 1)
	return raw, err
}

// NextInt increments the sequence and returns its state as int.
func (s Sequence) NextInt(db bazaar.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the most recently issued value without modifying the
// sequence.
func (s Sequence) Latest(db bazaar.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "sequence")
	}
	return DecodeSequence(raw), nil
}

func (s Sequence) increment(db bazaar.KVStore, inc int64) (int64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	val += inc
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "sequence")
	}
	return val, raw, nil
}

// DecodeSequence reads a value produced by EncodeSequence. A missing
// value is zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// EncodeSequence returns the big endian representation of the value.
func EncodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}
