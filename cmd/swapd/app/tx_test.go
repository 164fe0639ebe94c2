package app

import (
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
)

func TestTxGetMsg(t *testing.T) {
	create := &offer.CreateOfferMsg{OfferID: 1, OfferedAmountA: 10, ExpectedAmountB: 5, AssetA: "IOV", AssetB: "ETH"}
	cancel := &offer.CancelOfferMsg{Maker: swaptest.RandomAddr(), OfferID: 1}
	issue := &token.IssueMsg{Recipient: swaptest.RandomAddr(), Ticker: "IOV", Amount: 7}

	cases := map[string]struct {
		tx      Tx
		wantMsg swap.Msg
		wantErr *errors.Error
	}{
		"create offer": {
			tx:      Tx{CreateOfferMsg: create},
			wantMsg: create,
		},
		"cancel offer": {
			tx:      Tx{CancelOfferMsg: cancel},
			wantMsg: cancel,
		},
		"issue": {
			tx:      Tx{IssueMsg: issue},
			wantMsg: issue,
		},
		"no message": {
			tx:      Tx{},
			wantErr: errors.ErrEmpty,
		},
		"two messages": {
			tx:      Tx{CreateOfferMsg: create, CancelOfferMsg: cancel},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.tx.GetMsg()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantMsg, msg)
			}
		})
	}
}

func TestNewTx(t *testing.T) {
	msg := &token.RegisterAssetMsg{Ticker: "ETH", Name: "Ether", Decimals: 18}
	tx, err := NewTx(msg)
	assert.Nil(t, err)
	got, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, swap.Msg(msg), got)

	if _, err := NewTx(&swaptest.Msg{RoutePath: "test/msg"}); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
}

func TestTxSerialization(t *testing.T) {
	key := swaptest.NewKey()
	tx, err := NewTx(&offer.FulfillOfferMsg{Maker: swaptest.RandomAddr(), OfferID: 7, AssetB: "ETH"})
	assert.Nil(t, err)

	unsigned, err := tx.GetSignBytes()
	assert.Nil(t, err)

	sig, err := sigs.SignTx(key, tx, "test-chain", 0)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	signed, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signed)

	raw, err := swap.Marshal(tx)
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)

	dtx := decoded.(*Tx)
	assert.Equal(t, 1, len(dtx.GetSignatures()))
	assert.Equal(t, sig.Signature, dtx.GetSignatures()[0].Signature)
	msg, err := dtx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "offer/fulfill", msg.Path())
}
