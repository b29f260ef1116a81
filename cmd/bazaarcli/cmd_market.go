package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar"
	bazaard "github.com/iov-one/bazaar/cmd/bazaard/app"
	"github.com/iov-one/bazaar/x/market"
)

func cmdList(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction listing an asset for sale at a fixed price.

The signer must own the asset and must have approved the marketplace
address to transfer it.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl   = flAssetKey(fl, "asset", "Asset to be sold, in the <registry>/<hex id> format.")
		priceFl = flCoin(fl, "price", "", "The price the asset is sold for.")
	)
	fl.Parse(args)

	return writeMsg(output, &market.ListMsg{Key: *keyFl, Price: priceFl})
}

func cmdCancel(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction removing a listing. Only the seller can cancel it.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl = flAssetKey(fl, "asset", "Listed asset, in the <registry>/<hex id> format.")
	)
	fl.Parse(args)

	return writeMsg(output, &market.CancelMsg{Key: *keyFl})
}

func cmdUpdatePrice(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction changing the price of an existing listing.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl   = flAssetKey(fl, "asset", "Listed asset, in the <registry>/<hex id> format.")
		priceFl = flCoin(fl, "price", "", "The new price of the asset.")
	)
	fl.Parse(args)

	return writeMsg(output, &market.UpdateMsg{Key: *keyFl, Price: priceFl})
}

func cmdBuy(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction buying a listed asset. The payment must be at least the
listing price and is credited in full to the seller.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl     = flAssetKey(fl, "asset", "Listed asset, in the <registry>/<hex id> format.")
		paymentFl = flCoin(fl, "payment", "", "The amount paid for the asset.")
	)
	fl.Parse(args)

	return writeMsg(output, &market.BuyMsg{Key: *keyFl, Payment: paymentFl})
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction releasing all sale proceeds of the signer.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	return writeMsg(output, &market.WithdrawMsg{})
}

// writeMsg validates the message and writes it out as an unsigned
// transaction.
func writeMsg(output io.Writer, msg bazaar.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	_, err := writeTx(output, bazaard.NewTx(msg))
	return err
}
