package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	bazaard "github.com/iov-one/bazaar/cmd/bazaard/app"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It reads and writes only to
// the provided input and output. In a special case of an invalid argument a
// message to os.Stderr and os.Exit(2) call are allowed.
//
// Each command provides a single functionality. A unix pipe is used to
// combine them, for example creating, signing and submitting a listing:
//
//   $ bazaarcli list -asset <registry>/<id> -price "10 IOV" \
//       | bazaarcli sign \
//       | bazaarcli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"approve":           cmdApprove,
	"buy":               cmdBuy,
	"cancel":            cmdCancel,
	"create-collection": cmdCreateCollection,
	"keyaddr":           cmdKeyaddr,
	"keygen":            cmdKeygen,
	"list":              cmdList,
	"mint":              cmdMint,
	"mint-and-list":     cmdMintAndList,
	"query":             cmdQuery,
	"send-tokens":       cmdSendTokens,
	"sign":              cmdSignTransaction,
	"submit":            cmdSubmitTransaction,
	"transfer":          cmdTransfer,
	"update-price":      cmdUpdatePrice,
	"version":           cmdVersion,
	"view":              cmdTransactionView,
	"withdraw":          cmdWithdraw,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the bazaar marketplace.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, bazaard.Version)
	return nil
}
