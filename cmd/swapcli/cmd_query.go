package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/client"
	"github.com/iov-one/swap/errors"
)

func cmdOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the open offers of a maker as JSON. When an ID is given, only that
offer is printed.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SWAPCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
		makerFl = fl.String("maker", "", "Address of the offer maker.")
		idFl    = fl.Uint64("id", 0, "Offer ID. Zero lists all offers of the maker.")
	)
	fl.Parse(args)

	maker, err := swap.ParseAddress(*makerFl)
	if err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}

	swapClient := client.NewClient(newConnection(*tmAddrFl))
	var res interface{}
	if *idFl == 0 {
		res, err = swapClient.Offers(maker)
	} else {
		res, err = swapClient.Offer(maker, *idFl)
	}
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(res, "", "\t")
	if err != nil {
		return errors.Wrapf(errors.ErrType, "cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an account. A missing account has a zero balance.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("SWAPCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use SWAPCLI_TM_ADDR environment variable to set it.")
		ownerFl = fl.String("owner", "", "Address of the account owner.")
		assetFl = fl.String("asset", "", "Asset ticker.")
	)
	fl.Parse(args)

	owner, err := swap.ParseAddress(*ownerFl)
	if err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}

	swapClient := client.NewClient(newConnection(*tmAddrFl))
	bal, err := swapClient.Balance(owner, *assetFl)
	switch {
	case errors.ErrNotFound.Is(err):
		_, err = fmt.Fprintf(output, "0 %s\n", *assetFl)
		return err
	case err != nil:
		return err
	}
	_, err = fmt.Fprintf(output, "%s %s\n", bal.ToBig().String(), *assetFl)
	return err
}
