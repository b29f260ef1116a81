package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar"
	bazaard "github.com/iov-one/bazaar/cmd/bazaard/app"
	"github.com/iov-one/bazaar/cmd/bazaard/client"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/market"
)

func cmdMintAndList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Mint a new token owned by the signer, approve the marketplace and list the
token for sale. Three transactions are signed and submitted one after another.
The key of the listed token is printed.

The signer must own the collection.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use BAZAARCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transactions are signed with. You can use BAZAARCLI_PRIV_KEY environment variable to set it.")
		collectionFl = flAddress(fl, "collection", "", "Address of the collection.")
		uriFl        = fl.String("uri", "", "Optional token metadata URI.")
		priceFl      = flCoin(fl, "price", "", "The price the token is sold for.")
	)
	fl.Parse(args)

	if !priceFl.IsPositive() {
		flagDie("price must be greater than zero.")
	}

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	owner := key.PublicKey().Address()

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	chainID, err := c.ChainID()
	if err != nil {
		return fmt.Errorf("cannot fetch chain id: %s", err)
	}
	s := &submitter{client: c, key: key, chainID: chainID, nonce: client.NewNonce(c, owner)}

	data, err := s.submit(&asset.MintMsg{Collection: *collectionFl, Owner: owner, URI: *uriFl})
	if err != nil {
		return fmt.Errorf("cannot mint: %s", err)
	}
	token, err := asset.ParseKeyBytes(data)
	if err != nil {
		return fmt.Errorf("cannot parse minted token key: %s", err)
	}
	if _, err := s.submit(&asset.ApproveMsg{Key: token, Approved: market.LedgerAddress}); err != nil {
		return fmt.Errorf("cannot approve %s: %s", token, err)
	}
	if _, err := s.submit(&market.ListMsg{Key: token, Price: priceFl}); err != nil {
		return fmt.Errorf("cannot list %s: %s", token, err)
	}
	_, err = fmt.Fprintln(output, token)
	return err
}

// submitter signs messages with a single key and broadcasts them one by
// one.
type submitter struct {
	client  *client.Client
	key     *crypto.PrivateKey
	chainID string
	nonce   *client.Nonce
}

// submit returns the response data of the committed transaction.
func (s *submitter) submit(msg bazaar.Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	seq, err := s.nonce.Next()
	if err != nil {
		return nil, fmt.Errorf("cannot get the next sequence number: %s", err)
	}
	tx := bazaard.NewTx(msg)
	if err := tx.Sign(s.key, s.chainID, seq); err != nil {
		return nil, err
	}
	resp := s.client.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return nil, err
	}
	return resp.Response.DeliverTx.Data, nil
}
