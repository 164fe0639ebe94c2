package token

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

const optKey = "token"

// GenesisAccount is used to parse the initial balances from the genesis
// file. The balance is a decimal string so that it can hold any 256 bit
// value.
type GenesisAccount struct {
	Owner   swap.Address `json:"owner"`
	Asset   string       `json:"asset"`
	Balance string       `json:"balance"`
}

// Genesis is the content of the "token" genesis key.
type Genesis struct {
	Assets   []Asset          `json:"assets"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load assets and
// accounts from the genesis file.
type Initializer struct{}

var _ swap.Initializer = Initializer{}

// FromGenesis registers all assets and then credits all accounts.
func (Initializer) FromGenesis(opts swap.Options, db swap.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	ctrl := NewController()
	for i := range gen.Assets {
		a := gen.Assets[i]
		if err := ctrl.assets.Has(db, []byte(a.Ticker)); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "asset %q", a.Ticker)
		}
		if err := ctrl.assets.Put(db, []byte(a.Ticker), &a); err != nil {
			return errors.Wrapf(err, "asset %q", a.Ticker)
		}
	}
	for _, acc := range gen.Accounts {
		if err := acc.Owner.Validate(); err != nil {
			return errors.Wrap(err, "account owner")
		}
		amount, err := uint256.FromDecimal(acc.Balance)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "balance %q: %s", acc.Balance, err)
		}
		if err := ctrl.Issue(db, acc.Owner, acc.Asset, amount); err != nil {
			return errors.Wrapf(err, "%s account of %s", acc.Asset, acc.Owner)
		}
	}
	return nil
}
