package orm

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

type counter struct {
	Owner string
	Count int64
}

func (c *counter) Marshal() ([]byte, error) { return bazaar.MarshalBinary(c) }

func (c *counter) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, c) }

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type otherModel struct {
	counter
}

func ownerIndexer(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	if c.Owner == "" {
		return nil, nil
	}
	return []byte(c.Owner), nil
}

func TestModelBucketPutOneDelete(t *testing.T) {
	b := NewModelBucket("counter", &counter{})
	db := store.MemStore()

	if err := b.Put(db, []byte("c1"), &counter{Owner: "alice", Count: 3}); err != nil {
		t.Fatalf("put: %s", err)
	}

	var got counter
	if err := b.One(db, []byte("c1"), &got); err != nil {
		t.Fatalf("one: %s", err)
	}
	if got.Owner != "alice" || got.Count != 3 {
		t.Fatalf("unexpected model: %+v", got)
	}
	if err := b.Has(db, []byte("c1")); err != nil {
		t.Fatalf("has: %s", err)
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	if err := b.One(db, []byte("c1"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if err := b.Delete(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketPutErrors(t *testing.T) {
	b := NewModelBucket("counter", &counter{})
	db := store.MemStore()

	cases := map[string]struct {
		key     []byte
		model   Model
		wantErr *errors.Error
	}{
		"invalid model": {
			key:     []byte("a"),
			model:   &counter{Count: -1},
			wantErr: errors.ErrModel,
		},
		"empty key": {
			key:     nil,
			model:   &counter{},
			wantErr: errors.ErrEmpty,
		},
		"wrong model type": {
			key:     []byte("a"),
			model:   &otherModel{},
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := b.Put(db, tc.key, tc.model); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestModelBucketIndex(t *testing.T) {
	b := NewModelBucket("counter", &counter{}, WithIndex("owner", ownerIndexer, false))
	db := store.MemStore()

	put := func(key, owner string) {
		t.Helper()
		if err := b.Put(db, []byte(key), &counter{Owner: owner, Count: 1}); err != nil {
			t.Fatalf("put %s: %s", key, err)
		}
	}
	put("c1", "alice")
	put("c2", "bob")
	put("c3", "alice")
	put("c4", "")

	var found []counter
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &found)
	if err != nil {
		t.Fatalf("by index: %s", err)
	}
	if len(keys) != 2 || string(keys[0]) != "c1" || string(keys[1]) != "c3" {
		t.Fatalf("unexpected keys: %q", keys)
	}
	if len(found) != 2 || found[0].Owner != "alice" {
		t.Fatalf("unexpected models: %+v", found)
	}

	// Moving c1 to bob updates both index entries.
	put("c1", "bob")
	var ptrs []*counter
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &ptrs)
	if err != nil {
		t.Fatalf("by index: %s", err)
	}
	if len(keys) != 2 || len(ptrs) != 2 {
		t.Fatalf("unexpected keys: %q", keys)
	}
	if keys, _ := b.ByIndex(db, "owner", []byte("alice"), &found); len(keys) != 1 {
		t.Fatalf("stale index entries: %q", keys)
	}

	if err := b.Delete(db, []byte("c3")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	found = nil
	if keys, _ := b.ByIndex(db, "owner", []byte("alice"), &found); len(keys) != 0 {
		t.Fatalf("deleted entity still indexed: %q", keys)
	}

	if _, err := b.ByIndex(db, "missing", nil, &found); !errors.ErrHuman.Is(err) {
		t.Fatalf("want coding error, got %+v", err)
	}
}

func TestModelBucketUniqueIndex(t *testing.T) {
	b := NewModelBucket("counter", &counter{}, WithIndex("owner", ownerIndexer, true))
	db := store.MemStore()

	if err := b.Put(db, []byte("c1"), &counter{Owner: "alice"}); err != nil {
		t.Fatalf("put: %s", err)
	}
	// Updating the same entity does not conflict with itself.
	if err := b.Put(db, []byte("c1"), &counter{Owner: "alice", Count: 2}); err != nil {
		t.Fatalf("update: %s", err)
	}
	if err := b.Put(db, []byte("c2"), &counter{Owner: "alice"}); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}
}

func TestModelBucketQuery(t *testing.T) {
	b := NewModelBucket("counter", &counter{}, WithIndex("owner", ownerIndexer, false))
	db := store.MemStore()
	for _, key := range []string{"a1", "a2", "b1"} {
		if err := b.Put(db, []byte(key), &counter{Owner: "carol", Count: 1}); err != nil {
			t.Fatalf("put: %s", err)
		}
	}

	qr := bazaar.NewQueryRouter()
	b.Register("/counters", qr)

	res, err := qr.Handler("/counters").Query(db, bazaar.KeyQueryMod, []byte("a2"))
	if err != nil || len(res) != 1 || string(res[0].Key) != "a2" {
		t.Fatalf("key query: %v %v", res, err)
	}
	res, err = qr.Handler("/counters").Query(db, bazaar.PrefixQueryMod, []byte("a"))
	if err != nil || len(res) != 2 {
		t.Fatalf("prefix query: %v %v", res, err)
	}
	res, err = qr.Handler("/counters/owner").Query(db, bazaar.KeyQueryMod, []byte("carol"))
	if err != nil || len(res) != 3 {
		t.Fatalf("index query: %v %v", res, err)
	}
	var c counter
	if err := c.Unmarshal(res[2].Value); err != nil || c.Owner != "carol" {
		t.Fatalf("unexpected value: %+v %v", c, err)
	}
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("counter", "id")

	if v, err := seq.Latest(db); err != nil || v != 0 {
		t.Fatalf("unexpected initial value: %d %v", v, err)
	}
	first, err := seq.NextVal(db)
	if err != nil {
		t.Fatalf("next: %s", err)
	}
	second, err := seq.NextInt(db)
	if err != nil || second != 2 {
		t.Fatalf("unexpected second value: %d %v", second, err)
	}
	if DecodeSequence(first) != 1 {
		t.Fatalf("unexpected first value: %X", first)
	}
	if string(first) >= string(EncodeSequence(second)) {
		t.Fatal("sequence values must be ordered")
	}
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"simple":  {prefix: []byte{1, 2}, wantStart: []byte{1, 2}, wantEnd: []byte{1, 3}},
		"carry":   {prefix: []byte{1, 0xff}, wantStart: []byte{1, 0xff}, wantEnd: []byte{2}},
		"all max": {prefix: []byte{0xff, 0xff}, wantStart: []byte{0xff, 0xff}, wantEnd: nil},
		"empty":   {prefix: nil, wantStart: nil, wantEnd: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := PrefixRange(tc.prefix)
			if string(start) != string(tc.wantStart) || string(end) != string(tc.wantEnd) {
				t.Fatalf("want [%X, %X), got [%X, %X)", tc.wantStart, tc.wantEnd, start, end)
			}
		})
	}
}
