package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/market"
)

func cmdCreateCollection(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction registering a new asset collection. The owner is the
only one allowed to mint tokens in it.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl = flAddress(fl, "owner", "", "Address of the collection owner.")
		nameFl  = fl.String("name", "", "Optional human readable name of the collection.")
	)
	fl.Parse(args)

	return writeMsg(output, &asset.CreateCollectionMsg{Owner: *ownerFl, Name: *nameFl})
}

func cmdMint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction minting a new token in a collection. When no id is given
the next sequence value of the collection is used.
`)
		fl.PrintDefaults()
	}
	var (
		collectionFl = flAddress(fl, "collection", "", "Address of the collection.")
		idFl         = flHex(fl, "id", "", "Optional hex encoded token id.")
		ownerFl      = flAddress(fl, "owner", "", "Address of the token owner.")
		uriFl        = fl.String("uri", "", "Optional token metadata URI.")
	)
	fl.Parse(args)

	return writeMsg(output, &asset.MintMsg{
		Collection: *collectionFl,
		ID:         *idFl,
		Owner:      *ownerFl,
		URI:        *uriFl,
	})
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction allowing an address to transfer a token on behalf of its
owner. Approve the marketplace address before listing a token. When no
address is given the approval is cleared.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl      = flAssetKey(fl, "asset", "Token, in the <registry>/<hex id> format.")
		approvedFl = flAddress(fl, "approved", "", "Address allowed to transfer the token. Use the marketplace address to allow listing.")
		marketFl   = fl.Bool("market", false, "Approve the marketplace address.")
	)
	fl.Parse(args)

	msg := &asset.ApproveMsg{Key: *keyFl, Approved: *approvedFl}
	if *marketFl {
		msg.Approved = market.LedgerAddress
	}
	return writeMsg(output, msg)
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction moving a token to a new owner.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl  = flAssetKey(fl, "asset", "Token, in the <registry>/<hex id> format.")
		fromFl = flAddress(fl, "from", "", "Current owner of the token.")
		toFl   = flAddress(fl, "to", "", "New owner of the token.")
	)
	fl.Parse(args)

	return writeMsg(output, &asset.TransferMsg{Key: *keyFl, From: *fromFl, To: *toFl})
}
