package main

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/ed25519"

	bazaard "github.com/iov-one/bazaar/cmd/bazaard/app"
	"github.com/iov-one/bazaar/crypto"
)

const txHeaderSize = 4

// writeTx serializes the transaction prefixed with its size. Size
// information is required to be able to stream several transactions
// through a single pipe.
func writeTx(w io.Writer, tx *bazaard.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

// readTx reads a single transaction written by writeTx.
func readTx(r io.Reader) (*bazaard.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx bazaard.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func defaultKeyPath() string {
	return env("BAZAARCLI_PRIV_KEY", os.Getenv("HOME")+"/.bazaar.priv.key")
}

func defaultTmAddr() string {
	return env("BAZAARCLI_TM_ADDR", "http://localhost:26657")
}

// decodePrivateKey loads a key file. Both the JSON format written by
// keygen and a raw 64 byte ed25519 key are accepted.
func decodePrivateKey(path string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", path, err)
	}
	if len(data) == ed25519.PrivateKeySize {
		return &crypto.PrivateKey{Ed25519: data}, nil
	}
	var key crypto.PrivateKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, errors.New("invalid private key file")
	}
	return &key, nil
}

// flagDie terminates the process with a message about an invalid argument.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
