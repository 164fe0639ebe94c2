package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/swap"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program and the command name. Keep each command small and use
// a unix pipe to build a pipeline:
//
//	$ swapcli create-offer -id 1 -offered 1000 -expected 250 -asset-a IOV -asset-b ETH \
//	    | swapcli sign \
//	    | swapcli submit
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"balance":        cmdBalance,
	"cancel-offer":   cmdCancelOffer,
	"create-offer":   cmdCreateOffer,
	"fulfill-offer":  cmdFulfillOffer,
	"issue":          cmdIssue,
	"keyaddr":        cmdKeyaddr,
	"keygen":         cmdKeygen,
	"offer":          cmdOffer,
	"register-asset": cmdRegisterAsset,
	"sign":           cmdSignTransaction,
	"submit":         cmdSubmitTransaction,
	"version":        cmdVersion,
	"view":           cmdTransactionView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the swap application.\n\n", os.Args[0])
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

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
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
	fmt.Fprintln(out, swap.Version())
	return nil
}
