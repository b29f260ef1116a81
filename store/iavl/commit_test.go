package iavl

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestCommitStoreCommit(t *testing.T) {
	s := MockCommitStore()
	if err := s.LoadLatestVersion(); err != nil {
		t.Fatalf("load: %s", err)
	}

	cache := s.CacheWrap()
	if err := cache.Set([]byte("listing"), []byte("100")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}

	// Not committed yet.
	if val, _ := s.Get([]byte("listing")); val != nil {
		t.Fatalf("uncommitted value visible: %q", val)
	}

	id, err := s.Commit()
	if err != nil {
		t.Fatalf("commit: %s", err)
	}
	if id.Version != 1 || len(id.Hash) == 0 {
		t.Fatalf("unexpected commit id: %+v", id)
	}
	if val, _ := s.Get([]byte("listing")); !bytes.Equal(val, []byte("100")) {
		t.Fatalf("unexpected committed value: %q", val)
	}

	latest, err := s.LatestVersion()
	if err != nil {
		t.Fatalf("latest version: %s", err)
	}
	if latest.Version != id.Version || !bytes.Equal(latest.Hash, id.Hash) {
		t.Fatalf("want %+v, got %+v", id, latest)
	}
}

func TestCommitStoreIterator(t *testing.T) {
	s := MockCommitStore()
	cache := s.CacheWrap()
	for _, k := range []string{"a", "b", "c"} {
		if err := cache.Set([]byte(k), []byte(k)); err != nil {
			t.Fatalf("set: %s", err)
		}
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}

	next := s.CacheWrap()
	if err := next.Delete([]byte("b")); err != nil {
		t.Fatalf("delete: %s", err)
	}
	it, err := next.ReverseIterator(nil, nil)
	if err != nil {
		t.Fatalf("iterator: %s", err)
	}
	defer it.Close()
	var keys []byte
	for ; it.Valid(); err = it.Next() {
		keys = append(keys, it.Key()...)
	}
	if string(keys) != "ca" {
		t.Fatalf("unexpected keys: %q", keys)
	}
}

func TestCommitStoreReload(t *testing.T) {
	db := dbm.NewMemDB()

	s := NewCommitStoreFromDB(db)
	cache := s.CacheWrap()
	if err := cache.Set([]byte("proceeds"), []byte("42")); err != nil {
		t.Fatalf("set: %s", err)
	}
	if err := cache.Write(); err != nil {
		t.Fatalf("write: %s", err)
	}
	want, err := s.Commit()
	if err != nil {
		t.Fatalf("commit: %s", err)
	}

	reloaded := NewCommitStoreFromDB(db)
	if err := reloaded.LoadLatestVersion(); err != nil {
		t.Fatalf("load: %s", err)
	}
	got, err := reloaded.LatestVersion()
	if err != nil {
		t.Fatalf("latest: %s", err)
	}
	if got.Version != want.Version || !bytes.Equal(got.Hash, want.Hash) {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	if val, _ := reloaded.Get([]byte("proceeds")); string(val) != "42" {
		t.Fatalf("unexpected value: %q", val)
	}
}

func TestNewCommitStoreOnDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "bazaar-iavl")
	if err != nil {
		t.Fatalf("tempdir: %s", err)
	}
	defer os.RemoveAll(dir)

	s, err := NewCommitStore(dir, "state")
	if err != nil {
		t.Fatalf("open: %s", err)
	}
	if err := s.LoadLatestVersion(); err != nil {
		t.Fatalf("load: %s", err)
	}
	if _, err := s.Commit(); err != nil {
		t.Fatalf("commit: %s", err)
	}
}
