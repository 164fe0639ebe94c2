package app

import (
	"bytes"

	"github.com/iov-one/swap/commands"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	"golang.org/x/crypto/ed25519"
)

// exampleChainID is used for signing the example transactions.
const exampleChainID = "testgen-chain-123"

// exampleKey is a fixed key so that the generated files are stable.
var exampleKey = func() ed25519.PrivateKey {
	seed := bytes.NewReader([]byte("swap-testgen-seed-for-examples!!"))
	_, key, err := ed25519.GenerateKey(seed)
	if err != nil {
		panic(err)
	}
	return key
}()

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	maker := sigs.PubKeyCondition(exampleKey.Public().(ed25519.PublicKey)).Address()

	create := &offer.CreateOfferMsg{
		OfferID:         1,
		OfferedAmountA:  1000,
		ExpectedAmountB: 250,
		AssetA:          "IOV",
		AssetB:          "ETH",
	}
	fulfill := &offer.FulfillOfferMsg{Maker: maker, OfferID: 1, AssetB: "ETH"}
	cancel := &offer.CancelOfferMsg{Maker: maker, OfferID: 1}
	register := &token.RegisterAssetMsg{Ticker: "ETH", Name: "Ether", Decimals: 18}
	issue := &token.IssueMsg{Recipient: maker, Ticker: "ETH", Amount: 250}

	tx, err := NewTx(create)
	if err != nil {
		panic(err)
	}
	sig, err := sigs.SignTx(exampleKey, tx, exampleChainID, 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "create_offer_msg", Obj: create},
		{Filename: "fulfill_offer_msg", Obj: fulfill},
		{Filename: "cancel_offer_msg", Obj: cancel},
		{Filename: "register_asset_msg", Obj: register},
		{Filename: "issue_msg", Obj: issue},
		{Filename: "signed_tx", Obj: tx},
		{Filename: "offer", Obj: &offer.Offer{
			Maker:           maker,
			OfferID:         1,
			AssetA:          "IOV",
			AssetB:          "ETH",
			ExpectedAmountB: 250,
		}},
		{Filename: "user_data", Obj: &sigs.UserData{
			Pubkey:   exampleKey.Public().(ed25519.PublicKey),
			Sequence: 1,
		}},
	}
}
