package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/client"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SWAPCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
		chainFl = fl.String("chain", env("SWAPCLI_CHAIN_ID", ""),
			"Chain ID the signature is valid for. You can use SWAPCLI_CHAIN_ID environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use SWAPCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if !swap.IsValidChainID(*chainFl) {
		return errors.Wrapf(errors.ErrInput, "invalid chain ID %q", *chainFl)
	}
	key, err := loadKey(*keyPathFl)
	if err != nil {
		return err
	}
	tx, _, err := readTx(input)
	if err != nil {
		return errors.Wrap(err, "cannot read transaction")
	}

	swapClient := client.NewClient(newConnection(*tmAddrFl))
	seq, err := swapClient.NextNonce(keyAddress(key))
	if err != nil {
		return errors.Wrap(err, "cannot get the next sequence number")
	}
	sig, err := sigs.SignTx(key, tx, *chainFl, seq)
	if err != nil {
		return errors.Wrap(err, "cannot sign transaction")
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
