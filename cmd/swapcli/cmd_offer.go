package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/cmd/swapd/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/token"
)

func cmdCreateOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction opening a new offer. The offered amount of asset A is
moved into custody until the offer is taken or cancelled.
`)
		fl.PrintDefaults()
	}
	var (
		idFl       = fl.Uint64("id", 0, "Offer ID, unique among your offers.")
		offeredFl  = fl.Uint64("offered", 0, "Amount of asset A put in custody.")
		expectedFl = fl.Uint64("expected", 0, "Amount of asset B a taker must pay.")
		assetAFl   = fl.String("asset-a", "", "Ticker of the offered asset.")
		assetBFl   = fl.String("asset-b", "", "Ticker of the expected asset.")
	)
	fl.Parse(args)

	return writeMsg(output, &offer.CreateOfferMsg{
		OfferID:         *idFl,
		OfferedAmountA:  *offeredFl,
		ExpectedAmountB: *expectedFl,
		AssetA:          *assetAFl,
		AssetB:          *assetBFl,
	})
}

func cmdFulfillOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction taking an offer. The expected amount of asset B is paid
to the maker and the content of the custody vault is paid to the signer.
`)
		fl.PrintDefaults()
	}
	var (
		makerFl  = fl.String("maker", "", "Address of the offer maker.")
		idFl     = fl.Uint64("id", 0, "Offer ID.")
		assetBFl = fl.String("asset-b", "", "Ticker of the asset paid. Must match the offer.")
	)
	fl.Parse(args)

	maker, err := swap.ParseAddress(*makerFl)
	if err != nil {
		return errors.Wrap(err, "maker")
	}
	return writeMsg(output, &offer.FulfillOfferMsg{
		Maker:   maker,
		OfferID: *idFl,
		AssetB:  *assetBFl,
	})
}

func cmdCancelOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction cancelling an offer. The custody vault content is
returned to the maker. Only the maker can sign it.
`)
		fl.PrintDefaults()
	}
	var (
		makerFl = fl.String("maker", "", "Address of the offer maker.")
		idFl    = fl.Uint64("id", 0, "Offer ID.")
	)
	fl.Parse(args)

	maker, err := swap.ParseAddress(*makerFl)
	if err != nil {
		return errors.Wrap(err, "maker")
	}
	return writeMsg(output, &offer.CancelOfferMsg{
		Maker:   maker,
		OfferID: *idFl,
	})
}

func cmdRegisterAsset(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction registering a new asset. Only the configured issuer can
sign it.
`)
		fl.PrintDefaults()
	}
	var (
		tickerFl   = fl.String("ticker", "", "Asset ticker.")
		nameFl     = fl.String("name", "", "Human readable asset name.")
		decimalsFl = fl.Uint("decimals", 0, "Number of decimal places.")
	)
	fl.Parse(args)

	return writeMsg(output, &token.RegisterAssetMsg{
		Ticker:   *tickerFl,
		Name:     *nameFl,
		Decimals: uint32(*decimalsFl),
	})
}

func cmdIssue(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction crediting new tokens of a registered asset to an account.
Only the configured issuer can sign it.
`)
		fl.PrintDefaults()
	}
	var (
		recipientFl = fl.String("recipient", "", "Address of the credited account.")
		tickerFl    = fl.String("ticker", "", "Ticker of the issued asset.")
		amountFl    = fl.Uint64("amount", 0, "Amount of tokens to issue.")
	)
	fl.Parse(args)

	recipient, err := swap.ParseAddress(*recipientFl)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	return writeMsg(output, &token.IssueMsg{
		Recipient: recipient,
		Ticker:    *tickerFl,
		Amount:    *amountFl,
	})
}

// writeMsg validates the message and writes it out as an unsigned
// transaction.
func writeMsg(output io.Writer, msg swap.Msg) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	tx, err := app.NewTx(msg)
	if err != nil {
		return err
	}
	_, err = writeTx(output, tx)
	return err
}
