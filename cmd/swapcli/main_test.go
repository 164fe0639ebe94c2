package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/client"
	"github.com/iov-one/swap/cmd/swapd/app"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const testChainID = "swapcli-test"

// withTestNode replaces the tendermint connection with an in-process
// application. The returned function restores it.
func withTestNode(t *testing.T, accounts ...token.GenesisAccount) func() {
	t.Helper()

	kv, err := app.CommitKVStore("")
	require.NoError(t, err)
	stack, err := app.Stack(prometheus.NewRegistry())
	require.NoError(t, err)
	application := app.Application(app.Name, stack, app.TxDecoder, kv, false)
	application.WithInit(app.Initializers())

	state, err := json.Marshal(map[string]interface{}{
		"token": token.Genesis{
			Assets: []token.Asset{
				{Ticker: "IOV", Name: "Internet of value", Decimals: 6},
				{Ticker: "ETH", Name: "Ether", Decimals: 18},
			},
			Accounts: accounts,
		},
	})
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})

	conn := client.NewAppConnection(application)
	prev := newConnection
	newConnection = func(string) client.Connection { return conn }
	return func() { newConnection = prev }
}

// run executes a command and returns its output.
func run(t *testing.T, name string, input []byte, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer
	if err := commands[name](bytes.NewReader(input), &out, args); err != nil {
		t.Fatalf("%s: %+v", name, err)
	}
	return out.Bytes()
}

func newKeyFile(t *testing.T, dir, name string) (string, swap.Address) {
	t.Helper()

	path := filepath.Join(dir, name)
	run(t, "keygen", nil, "-key", path)
	key, err := loadKey(path)
	require.NoError(t, err)
	return path, keyAddress(key)
}

func TestKeygen(t *testing.T) {
	dir, err := ioutil.TempDir("", "swapcli")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path, addr := newKeyFile(t, dir, "key")
	out := run(t, "keyaddr", nil, "-key", path)
	assert.Equal(t, addr.String()+"\n", string(out))

	// An existing key is never overwritten.
	err = cmdKeygen(nil, ioutil.Discard, []string{"-key", path})
	require.Error(t, err)
}

func TestCreateOfferView(t *testing.T) {
	raw := run(t, "create-offer", nil,
		"-id", "3", "-offered", "10", "-expected", "4", "-asset-a", "IOV", "-asset-b", "ETH")

	tx, _, err := readTx(bytes.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, tx.CreateOfferMsg)
	assert.Equal(t, uint64(3), tx.CreateOfferMsg.OfferID)

	view := run(t, "view", raw)
	assert.True(t, strings.Contains(string(view), `"offered_amount_a": 10`), string(view))

	// Same assets on both sides is rejected before anything is written.
	var out bytes.Buffer
	err = cmdCreateOffer(nil, &out, []string{"-id", "1", "-offered", "1", "-expected", "1", "-asset-a", "IOV", "-asset-b", "IOV"})
	require.Error(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestIssue(t *testing.T) {
	recipient := swaptest.RandomAddr()

	cases := map[string]struct {
		args    []string
		wantErr bool
	}{
		"hex recipient": {
			args: []string{"-recipient", recipient.String(), "-ticker", "IOV", "-amount", "12"},
		},
		"zero amount": {
			args:    []string{"-recipient", recipient.String(), "-ticker", "IOV", "-amount", "0"},
			wantErr: true,
		},
		"bad ticker": {
			args:    []string{"-recipient", recipient.String(), "-ticker", "iov", "-amount", "3"},
			wantErr: true,
		},
		"bad recipient": {
			args:    []string{"-recipient", "zz", "-ticker", "IOV", "-amount", "3"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var out bytes.Buffer
			err := cmdIssue(nil, &out, tc.args)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, 0, out.Len())
				return
			}
			require.NoError(t, err)
			tx, _, err := readTx(&out)
			require.NoError(t, err)
			require.NotNil(t, tx.IssueMsg)
			assert.Equal(t, recipient, tx.IssueMsg.Recipient)
			assert.Equal(t, uint64(12), tx.IssueMsg.Amount)
		})
	}
}

func TestSwapPipeline(t *testing.T) {
	dir, err := ioutil.TempDir("", "swapcli")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	makerKey, maker := newKeyFile(t, dir, "maker")
	takerKey, taker := newKeyFile(t, dir, "taker")

	defer withTestNode(t,
		token.GenesisAccount{Owner: maker, Asset: "IOV", Balance: "1000"},
		token.GenesisAccount{Owner: taker, Asset: "ETH", Balance: "100"},
	)()

	submit := func(keyPath string, unsigned []byte) string {
		signed := run(t, "sign", unsigned, "-key", keyPath, "-chain", testChainID)
		return string(run(t, "submit", signed))
	}

	out := submit(makerKey, run(t, "create-offer", nil,
		"-id", "1", "-offered", "600", "-expected", "40", "-asset-a", "IOV", "-asset-b", "ETH"))
	assert.True(t, strings.HasPrefix(out, "height 1\n"), out)

	offer := run(t, "offer", nil, "-maker", maker.String(), "-id", "1")
	assert.True(t, strings.Contains(string(offer), `"expected_amount_b": 40`), string(offer))

	submit(takerKey, run(t, "fulfill-offer", nil, "-maker", maker.String(), "-id", "1", "-asset-b", "ETH"))

	assert.Equal(t, "400 IOV\n", string(run(t, "balance", nil, "-owner", maker.String(), "-asset", "IOV")))
	assert.Equal(t, "40 ETH\n", string(run(t, "balance", nil, "-owner", maker.String(), "-asset", "ETH")))
	assert.Equal(t, "600 IOV\n", string(run(t, "balance", nil, "-owner", taker.String(), "-asset", "IOV")))
	assert.Equal(t, "60 ETH\n", string(run(t, "balance", nil, "-owner", taker.String(), "-asset", "ETH")))

	offers := run(t, "offer", nil, "-maker", maker.String())
	assert.Equal(t, "[]\n", string(offers))
}
