package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"golang.org/x/crypto/ed25519"
)

const testChainID = "swap-test-chain"

type testNode struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestNode(t *testing.T, genesis map[string]interface{}) *testNode {
	t.Helper()

	kv, err := CommitKVStore("")
	require.NoError(t, err)
	stack, err := Stack(prometheus.NewRegistry())
	require.NoError(t, err)

	application := Application(Name, stack, TxDecoder, kv, false)
	application.WithInit(Initializers())

	state, err := json.Marshal(genesis)
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})

	return &testNode{t: t, app: application}
}

// deliver runs given message signed with the key in a new block.
func (n *testNode) deliver(key ed25519.PrivateKey, msg swap.Msg) abci.ResponseDeliverTx {
	n.t.Helper()

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{Height: n.height, Time: time.Now()},
	})

	tx, err := NewTx(msg)
	require.NoError(n.t, err)
	sig, err := sigs.SignTx(key, tx, testChainID, n.nonce(keyAddress(key)))
	require.NoError(n.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := swap.Marshal(tx)
	require.NoError(n.t, err)

	n.app.CheckTx(raw)
	res := n.app.DeliverTx(raw)

	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	return res
}

// nonce returns the committed sequence of the signer.
func (n *testNode) nonce(signer swap.Address) int64 {
	n.t.Helper()

	res := n.app.Query(abci.RequestQuery{Path: "/auth", Data: signer})
	require.Equal(n.t, abci.CodeTypeOK, res.Code, res.Log)

	var user sigs.UserData
	err := app.UnmarshalOneResult(res.Value, &user)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(n.t, err)
	return user.Sequence
}

func (n *testNode) balance(owner swap.Address, ticker string) uint64 {
	n.t.Helper()

	res := n.app.Query(abci.RequestQuery{
		Path: "/accounts",
		Data: token.AccountKey(owner, ticker),
	})
	require.Equal(n.t, abci.CodeTypeOK, res.Code, res.Log)

	var acc token.Account
	err := app.UnmarshalOneResult(res.Value, &acc)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(n.t, err)
	return acc.Amount().Uint64()
}

func (n *testNode) hasOffer(maker swap.Address, offerID uint64) bool {
	n.t.Helper()

	res := n.app.Query(abci.RequestQuery{
		Path: "/offers",
		Data: offer.Key(maker, offerID),
	})
	require.Equal(n.t, abci.CodeTypeOK, res.Code, res.Log)

	var o offer.Offer
	err := app.UnmarshalOneResult(res.Value, &o)
	if errors.ErrNotFound.Is(err) {
		return false
	}
	require.NoError(n.t, err)
	return true
}

func keyAddress(key ed25519.PrivateKey) swap.Address {
	return sigs.PubKeyCondition(key.Public().(ed25519.PublicKey)).Address()
}

func testGenesis(issuer swap.Address, balances ...token.GenesisAccount) map[string]interface{} {
	return map[string]interface{}{
		"gconf": map[string]interface{}{
			"token": token.Configuration{Issuer: issuer},
		},
		"token": token.Genesis{
			Assets: []token.Asset{
				{Ticker: "IOV", Name: "Internet of value", Decimals: 6},
				{Ticker: "ETH", Name: "Ether", Decimals: 18},
			},
			Accounts: balances,
		},
	}
}

func TestSwapEndToEnd(t *testing.T) {
	maker := swaptest.NewKey()
	taker := swaptest.NewKey()
	makerAddr, takerAddr := keyAddress(maker), keyAddress(taker)

	node := newTestNode(t, testGenesis(makerAddr,
		token.GenesisAccount{Owner: makerAddr, Asset: "IOV", Balance: "5000"},
		token.GenesisAccount{Owner: takerAddr, Asset: "ETH", Balance: "700"},
	))

	res := node.deliver(maker, &offer.CreateOfferMsg{
		OfferID:         1,
		OfferedAmountA:  1000,
		ExpectedAmountB: 250,
		AssetA:          "IOV",
		AssetB:          "ETH",
	})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)
	assert.Equal(t, offer.Key(makerAddr, 1), res.Data)
	assert.True(t, node.hasOffer(makerAddr, 1))
	assert.Equal(t, uint64(4000), node.balance(makerAddr, "IOV"))

	// Only the maker can cancel.
	res = node.deliver(taker, &offer.CancelOfferMsg{Maker: makerAddr, OfferID: 1})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.True(t, node.hasOffer(makerAddr, 1))

	res = node.deliver(taker, &offer.FulfillOfferMsg{Maker: makerAddr, OfferID: 1, AssetB: "ETH"})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)

	assert.False(t, node.hasOffer(makerAddr, 1))
	assert.Equal(t, uint64(4000), node.balance(makerAddr, "IOV"))
	assert.Equal(t, uint64(250), node.balance(makerAddr, "ETH"))
	assert.Equal(t, uint64(1000), node.balance(takerAddr, "IOV"))
	assert.Equal(t, uint64(450), node.balance(takerAddr, "ETH"))

	// A closed offer cannot be taken twice.
	res = node.deliver(taker, &offer.FulfillOfferMsg{Maker: makerAddr, OfferID: 1, AssetB: "ETH"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	assert.Equal(t, uint64(450), node.balance(takerAddr, "ETH"))
}

func TestCreateAndCancel(t *testing.T) {
	maker := swaptest.NewKey()
	makerAddr := keyAddress(maker)

	node := newTestNode(t, testGenesis(makerAddr,
		token.GenesisAccount{Owner: makerAddr, Asset: "IOV", Balance: "1000"},
	))

	// The balance must be strictly greater than the offered amount.
	res := node.deliver(maker, &offer.CreateOfferMsg{
		OfferID: 1, OfferedAmountA: 1000, ExpectedAmountB: 1, AssetA: "IOV", AssetB: "ETH",
	})
	assert.Equal(t, errors.ErrBalance.ABCICode(), res.Code)
	assert.False(t, node.hasOffer(makerAddr, 1))

	res = node.deliver(maker, &offer.CreateOfferMsg{
		OfferID: 1, OfferedAmountA: 999, ExpectedAmountB: 1, AssetA: "IOV", AssetB: "ETH",
	})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)
	assert.Equal(t, uint64(1), node.balance(makerAddr, "IOV"))

	res = node.deliver(maker, &offer.CancelOfferMsg{Maker: makerAddr, OfferID: 1})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)
	assert.False(t, node.hasOffer(makerAddr, 1))
	assert.Equal(t, uint64(1000), node.balance(makerAddr, "IOV"))
}

func TestRegisterAsset(t *testing.T) {
	issuer := swaptest.NewKey()
	other := swaptest.NewKey()
	node := newTestNode(t, testGenesis(keyAddress(issuer)))

	res := node.deliver(other, &token.RegisterAssetMsg{Ticker: "BTC", Name: "Bitcoin", Decimals: 8})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	res = node.deliver(issuer, &token.RegisterAssetMsg{Ticker: "BTC", Name: "Bitcoin", Decimals: 8})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)

	q := node.app.Query(abci.RequestQuery{Path: "/assets", Data: []byte("BTC")})
	require.Equal(t, abci.CodeTypeOK, q.Code, q.Log)
	var asset token.Asset
	require.NoError(t, app.UnmarshalOneResult(q.Value, &asset))
	assert.Equal(t, uint32(8), asset.Decimals)

	otherAddr := keyAddress(other)
	res = node.deliver(other, &token.IssueMsg{Recipient: otherAddr, Ticker: "BTC", Amount: 5})
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Equal(t, uint64(0), node.balance(otherAddr, "BTC"))

	res = node.deliver(issuer, &token.IssueMsg{Recipient: otherAddr, Ticker: "BTC", Amount: 21})
	require.Equal(t, abci.CodeTypeOK, res.Code, res.Log)
	assert.Equal(t, uint64(21), node.balance(otherAddr, "BTC"))
}

func TestUnsignedTxIsRejected(t *testing.T) {
	node := newTestNode(t, testGenesis(swaptest.RandomAddr()))

	tx, err := NewTx(&offer.CancelOfferMsg{Maker: swaptest.RandomAddr(), OfferID: 1})
	require.NoError(t, err)
	raw, err := swap.Marshal(tx)
	require.NoError(t, err)

	res := node.app.CheckTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
}
