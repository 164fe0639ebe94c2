package offer

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/x"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/token"
)

type router map[string]swap.Handler

func (r router) Handle(path string, h swap.Handler) {
	r[path] = h
}

// fixture is a store with AAA, BBB and IOV assets registered.
type fixture struct {
	db     swap.CacheableKVStore
	tokens token.BaseController
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{db: store.MemStore(), tokens: token.NewController()}
	f.register(t, "AAA", 6)
	f.register(t, "BBB", 8)
	f.register(t, "IOV", 6)
	return f
}

func (f *fixture) register(t testing.TB, ticker string, decimals uint32) {
	t.Helper()
	a := token.Asset{Ticker: ticker, Name: "asset " + ticker, Decimals: decimals}
	if err := token.NewAssetBucket().Put(f.db, []byte(ticker), &a); err != nil {
		t.Fatalf("cannot register %s: %s", ticker, err)
	}
}

func (f *fixture) issue(t testing.TB, owner swap.Address, ticker string, amount uint64) {
	t.Helper()
	if err := f.tokens.Issue(f.db, owner, ticker, uint256.NewInt(amount)); err != nil {
		t.Fatalf("cannot issue %d %s: %s", amount, ticker, err)
	}
}

// enableDeposits makes every created account and offer cost given amount
// of IOV.
func (f *fixture) enableDeposits(t testing.TB, amount uint64) {
	t.Helper()
	if err := gconf.Save(f.db, "rent", &rent.Configuration{Asset: "IOV", Amount: amount}); err != nil {
		t.Fatalf("cannot save rent configuration: %s", err)
	}
}

// handlers returns the routed handlers acting with the authority of the
// given auth.
func (f *fixture) handlers(auth x.Authenticator) router {
	r := router{}
	RegisterRoutes(r, auth, f.tokens, rent.NewController(f.tokens))
	return r
}

// balance returns the balance or zero if the account does not exist.
func (f *fixture) balance(t testing.TB, owner swap.Address, ticker string) uint64 {
	t.Helper()
	got, err := f.tokens.Balance(f.db, owner, ticker)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0
	case err != nil:
		t.Fatalf("cannot get balance: %s", err)
	}
	return got.Uint64()
}

func (f *fixture) hasAccount(owner swap.Address, ticker string) bool {
	_, err := f.tokens.Account(f.db, owner, ticker)
	return err == nil
}
