package offer

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/token"
)

// CustodyAuthority returns the condition owning the vault of the offer with
// given key. The bump allows to pick a vault address that is not yet in use.
func CustodyAuthority(offerKey []byte, bump uint8) swap.Condition {
	data := make([]byte, 0, len(offerKey)+1)
	data = append(data, offerKey...)
	data = append(data, bump)
	return swap.NewCondition("offer", "custody", data)
}

// FindCustodyBump returns the greatest bump for which no holding account of
// given asset exists yet. A vault must always be a fresh account.
func FindCustodyBump(db swap.ReadOnlyKVStore, tokens token.Controller, offerKey []byte, ticker string) (uint8, error) {
	for b := 255; b >= 0; b-- {
		addr := CustodyAuthority(offerKey, uint8(b)).Address()
		_, err := tokens.Account(db, addr, ticker)
		switch {
		case errors.ErrNotFound.Is(err):
			return uint8(b), nil
		case err != nil:
			return 0, err
		}
	}
	return 0, errors.Wrap(errors.ErrState, "no custody address available")
}
