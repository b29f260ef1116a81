package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/bazaar/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file containing the private key is created and the
address of that key is printed. This command fails if the private key file
already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use BAZAARCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Deleting a key by accident is not recoverable, the user must
		// remove the file manually.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key := crypto.GenPrivKeyEd25519()
	raw, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("cannot serialize private key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(raw); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a hex-address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use BAZAARCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}
