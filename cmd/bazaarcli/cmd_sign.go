package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar/cmd/bazaard/client"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain id and the sequence of the signer are fetched from the node unless
provided.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use BAZAARCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use BAZAARCLI_PRIV_KEY environment variable to set it.")
		chainIDFl = fl.String("chain", "", "Chain id. Fetched from the node when not given.")
		seqFl     = fl.Int64("seq", -1, "Sequence of the signer. Fetched from the node when not given.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	chainID, seq := *chainIDFl, *seqFl
	if chainID == "" || seq < 0 {
		c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
		if chainID == "" {
			if chainID, err = c.ChainID(); err != nil {
				return fmt.Errorf("cannot fetch chain id: %s", err)
			}
		}
		if seq < 0 {
			if seq, err = c.NextSequence(key.PublicKey().Address()); err != nil {
				return fmt.Errorf("cannot get the next sequence number: %s", err)
			}
		}
	}

	if err := tx.Sign(key, chainID, seq); err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	_, err = writeTx(output, tx)
	return err
}
