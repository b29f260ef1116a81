package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar/x/cash"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transfering funds from the source account to the
destination account.
`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source account address that the funds are sent from.")
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the funds are sent to.")
		amountFl = flCoin(fl, "amount", "1 IOV", "An amount that is to be transferred between the source to the destination accounts.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Parse(args)

	return writeMsg(output, &cash.SendMsg{
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      amountFl,
		Memo:        *memoFl,
	})
}
