package rent

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
	"github.com/iov-one/swap/x/token"
)

func TestReserveAndRelease(t *testing.T) {
	payer := swaptest.NewCondition()
	beneficiary := swaptest.RandomAddr()

	cases := map[string]struct {
		conf        *Configuration
		funds       uint64
		wantErr     *errors.Error
		wantPayer   uint64
		wantPool    uint64
		wantRefund  uint64
		wantDeposit bool
	}{
		"deposit charged and refunded": {
			conf:        &Configuration{Asset: "IOV", Amount: 10},
			funds:       100,
			wantPayer:   90,
			wantPool:    10,
			wantRefund:  10,
			wantDeposit: true,
		},
		"exact funds are enough": {
			conf:        &Configuration{Asset: "IOV", Amount: 10},
			funds:       10,
			wantPayer:   0,
			wantPool:    10,
			wantRefund:  10,
			wantDeposit: true,
		},
		"insufficient funds": {
			conf:      &Configuration{Asset: "IOV", Amount: 10},
			funds:     9,
			wantErr:   errors.ErrBalance,
			wantPayer: 9,
		},
		"no account of the deposit asset": {
			conf:    &Configuration{Asset: "IOV", Amount: 10},
			wantErr: errors.ErrBalance,
		},
		"deposits disabled": {
			conf:      &Configuration{Asset: "IOV", Amount: 0},
			funds:     100,
			wantPayer: 100,
		},
		"not configured": {
			funds:     100,
			wantPayer: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			tokens := token.NewController()
			setupAsset(t, db, "IOV")
			if tc.funds > 0 {
				assert.Nil(t, tokens.Issue(db, payer.Address(), "IOV", uint256.NewInt(tc.funds)))
			}
			if tc.conf != nil {
				assert.Nil(t, gconf.Save(db, packageName, tc.conf))
			}
			ctrl := NewController(tokens)
			ref := Ref("offer", []byte("some key"))

			err := ctrl.Reserve(db, payer, ref)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assertBalance(t, db, payer.Address(), tc.wantPayer)
			assertBalance(t, db, PoolCondition().Address(), tc.wantPool)

			hasDeposit := NewDepositBucket().Has(db, ref) == nil
			assert.Equal(t, tc.wantDeposit, hasDeposit)

			assert.Nil(t, ctrl.Release(db, ref, beneficiary))
			assertBalance(t, db, beneficiary, tc.wantRefund)
			assertBalance(t, db, PoolCondition().Address(), 0)
			assert.IsErr(t, errors.ErrNotFound, NewDepositBucket().Has(db, ref))

			// Releasing twice pays nothing.
			assert.Nil(t, ctrl.Release(db, ref, beneficiary))
			assertBalance(t, db, beneficiary, tc.wantRefund)
		})
	}
}

func TestReserveTwice(t *testing.T) {
	db := store.MemStore()
	tokens := token.NewController()
	payer := swaptest.NewCondition()
	setupAsset(t, db, "IOV")
	assert.Nil(t, tokens.Issue(db, payer.Address(), "IOV", uint256.NewInt(100)))
	assert.Nil(t, gconf.Save(db, packageName, &Configuration{Asset: "IOV", Amount: 10}))

	ctrl := NewController(tokens)
	ref := Ref("account", []byte("xyz"))
	assert.Nil(t, ctrl.Reserve(db, payer, ref))
	assert.IsErr(t, errors.ErrDuplicate, ctrl.Reserve(db, payer, ref))
	assertBalance(t, db, payer.Address(), 90)
}

func TestDepositsQuery(t *testing.T) {
	db := store.MemStore()
	tokens := token.NewController()
	payer := swaptest.NewCondition()
	setupAsset(t, db, "IOV")
	assert.Nil(t, tokens.Issue(db, payer.Address(), "IOV", uint256.NewInt(100)))
	assert.Nil(t, gconf.Save(db, packageName, &Configuration{Asset: "IOV", Amount: 10}))

	ctrl := NewController(tokens)
	assert.Nil(t, ctrl.Reserve(db, payer, Ref("offer", []byte("a"))))
	assert.Nil(t, ctrl.Reserve(db, payer, Ref("offer", []byte("b"))))
	assert.Nil(t, ctrl.Reserve(db, payer, Ref("account", []byte("c"))))

	qr := swap.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/deposits").Query(db, swap.PrefixQueryMod, []byte("offer:"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
}

func TestConfigurationValidate(t *testing.T) {
	cases := map[string]struct {
		conf    Configuration
		wantErr *errors.Error
	}{
		"disabled":       {conf: Configuration{}},
		"valid":          {conf: Configuration{Asset: "IOV", Amount: 1}},
		"invalid ticker": {conf: Configuration{Asset: "iov", Amount: 1}, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.conf.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestRef(t *testing.T) {
	assert.Equal(t, []byte("offer:abc"), Ref("offer", []byte("abc")))
}

func setupAsset(t testing.TB, db swap.KVStore, ticker string) {
	t.Helper()
	a := token.Asset{Ticker: ticker, Name: "asset " + ticker, Decimals: 6}
	var bucket orm.ModelBucket = token.NewAssetBucket()
	if err := bucket.Put(db, []byte(ticker), &a); err != nil {
		t.Fatalf("cannot register %s: %s", ticker, err)
	}
}

func assertBalance(t testing.TB, db swap.ReadOnlyKVStore, owner swap.Address, want uint64) {
	t.Helper()
	got, err := token.NewController().Balance(db, owner, "IOV")
	switch {
	case errors.ErrNotFound.Is(err):
		got = new(uint256.Int)
	case err != nil:
		t.Fatalf("cannot get balance: %s", err)
	}
	if !got.Eq(uint256.NewInt(want)) {
		t.Fatalf("want %d, got %s", want, got.ToBig())
	}
}
