package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/cmd/bazaard/client"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/market"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

For certain transactions response is written out, for example the key of a
minted token or the amount released by a withdrawal.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use BAZAARCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	resp := c.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	r, err := extractResponse(msg, resp.Response.DeliverTx.Data, formatters)
	if err != nil {
		return fmt.Errorf("cannot extract response: %s", err)
	}
	if r != "" {
		fmt.Fprintln(output, r)
	}
	return nil
}

// extractResponse returns a human readable representation of the response
// data of the message. It returns an empty string if the response does
// not contain anything worth showing to the user.
func extractResponse(msg bazaar.Msg, respData []byte, fmts map[string]func([]byte) (string, error)) (string, error) {
	format, ok := fmts[msg.Path()]
	if !ok {
		return "", nil
	}
	pretty, err := format(respData)
	if err != nil {
		return "", fmt.Errorf("cannot format result data %x: %s", respData, err)
	}
	return pretty, nil
}

// formatters contains a mapping of a message path to response parser.
// Response parse function accepts a raw bytes of serialized response and
// must return a human representation of that data.
var formatters = map[string]func([]byte) (string, error){
	asset.CreateCollectionMsg{}.Path(): fmtAddress,
	asset.MintMsg{}.Path():             fmtAssetKey,
	market.ListMsg{}.Path():            fmtAssetKey,
	market.WithdrawMsg{}.Path():        fmtCoin,
}

func fmtAddress(raw []byte) (string, error) {
	addr := bazaar.Address(raw)
	if err := addr.Validate(); err != nil {
		return "", err
	}
	return addr.String(), nil
}

func fmtAssetKey(raw []byte) (string, error) {
	key, err := asset.ParseKeyBytes(raw)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

func fmtCoin(raw []byte) (string, error) {
	var c coin.Coin
	if err := c.Unmarshal(raw); err != nil {
		return "", err
	}
	return c.String(), nil
}
