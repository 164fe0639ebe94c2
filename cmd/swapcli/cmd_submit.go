package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/swap/client"
	"github.com/iov-one/swap/errors"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it. The
height of the block and the hex encoded result data are written out.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SWAPCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return errors.Wrap(err, "cannot read transaction from input")
	}

	swapClient := client.NewClient(newConnection(*tmAddrFl))
	res, err := swapClient.SubmitTx(tx)
	if err != nil {
		return errors.Wrap(err, "cannot broadcast transaction")
	}
	_, err = fmt.Fprintf(output, "height %d\ndata %X\n", res.Height, res.Result.Data)
	return err
}
