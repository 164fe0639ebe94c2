package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/swap/errors"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display transaction summary. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return errors.Wrap(err, "cannot read transaction")
	}

	pretty, err := json.MarshalIndent(tx, "", "\t")
	if err != nil {
		return errors.Wrapf(errors.ErrType, "cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
