package offer

import (
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestOfferValidate(t *testing.T) {
	maker := swaptest.RandomAddr()

	cases := map[string]struct {
		offer   Offer
		wantErr *errors.Error
	}{
		"valid": {
			offer: Offer{OfferID: 1, Maker: maker, AssetA: "AAA", AssetB: "BBB", ExpectedAmountB: 5, CustodyBump: 255},
		},
		"missing maker": {
			offer:   Offer{OfferID: 1, AssetA: "AAA", AssetB: "BBB", ExpectedAmountB: 5},
			wantErr: errors.ErrInput,
		},
		"same assets": {
			offer:   Offer{OfferID: 1, Maker: maker, AssetA: "AAA", AssetB: "AAA", ExpectedAmountB: 5},
			wantErr: ErrInvalidAssetPair,
		},
		"invalid ticker": {
			offer:   Offer{OfferID: 1, Maker: maker, AssetA: "a", AssetB: "BBB", ExpectedAmountB: 5},
			wantErr: errors.ErrModel,
		},
		"zero expected amount": {
			offer:   Offer{OfferID: 1, Maker: maker, AssetA: "AAA", AssetB: "BBB"},
			wantErr: errors.ErrAmount,
		},
		"bump out of range": {
			offer:   Offer{OfferID: 1, Maker: maker, AssetA: "AAA", AssetB: "BBB", ExpectedAmountB: 5, CustodyBump: 256},
			wantErr: errors.ErrModel,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.offer.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestKey(t *testing.T) {
	maker := swap.Address("01234567890123456789")
	key := Key(maker, 0x0102)
	assert.Equal(t, 28, len(key))
	assert.Equal(t, []byte(maker), key[:20])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, key[20:])

	// Keys of one maker share a prefix and sort by id.
	if string(Key(maker, 1)) >= string(Key(maker, 2)) {
		t.Fatal("offer keys must sort by id")
	}
}

func TestCustodyAuthority(t *testing.T) {
	key := Key(swaptest.RandomAddr(), 1)

	a := CustodyAuthority(key, 255)
	assert.Nil(t, a.Validate())
	assert.Equal(t, a, CustodyAuthority(key, 255))

	if a.Address().Equals(CustodyAuthority(key, 254).Address()) {
		t.Fatal("bump must change the address")
	}
	if a.Address().Equals(CustodyAuthority(Key(swaptest.RandomAddr(), 1), 255).Address()) {
		t.Fatal("offer key must change the address")
	}

	ext, typ, _, err := a.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "offer", ext)
	assert.Equal(t, "custody", typ)
}

func TestFindCustodyBump(t *testing.T) {
	f := newFixture(t)
	key := Key(swaptest.RandomAddr(), 1)

	bump, err := FindCustodyBump(f.db, f.tokens, key, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, uint8(255), bump)

	// Accounts of other assets do not matter.
	assert.Nil(t, f.tokens.OpenAccount(f.db, CustodyAuthority(key, 255).Address(), "BBB"))
	bump, err = FindCustodyBump(f.db, f.tokens, key, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, uint8(255), bump)

	for b := 255; b >= 250; b-- {
		assert.Nil(t, f.tokens.OpenAccount(f.db, CustodyAuthority(key, uint8(b)).Address(), "AAA"))
	}
	bump, err = FindCustodyBump(f.db, f.tokens, key, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, uint8(249), bump)
}

func TestFindCustodyBumpExhausted(t *testing.T) {
	f := newFixture(t)
	key := Key(swaptest.RandomAddr(), 1)
	for b := 0; b <= 255; b++ {
		assert.Nil(t, f.tokens.OpenAccount(f.db, CustodyAuthority(key, uint8(b)).Address(), "AAA"))
	}
	_, err := FindCustodyBump(f.db, f.tokens, key, "AAA")
	assert.IsErr(t, errors.ErrState, err)
}
