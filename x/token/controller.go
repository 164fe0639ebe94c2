package token

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
)

// Controller is the functionality that other extensions use to manage
// holding accounts and move funds.
type Controller interface {
	// Asset returns the registered asset with given ticker.
	Asset(db swap.ReadOnlyKVStore, ticker string) (*Asset, error)

	// Account returns the holding account. ErrNotFound is returned if it
	// does not exist.
	Account(db swap.ReadOnlyKVStore, owner swap.Address, ticker string) (*Account, error)

	// Balance returns the balance of the holding account. ErrNotFound
	// is returned if the account does not exist.
	Balance(db swap.ReadOnlyKVStore, owner swap.Address, ticker string) (*uint256.Int, error)

	// OpenAccount creates an empty holding account. ErrDuplicate is
	// returned if the account already exists.
	OpenAccount(db swap.KVStore, owner swap.Address, ticker string) error

	// EnsureAccount creates an empty holding account unless it already
	// exists. It returns true if an account was created.
	EnsureAccount(db swap.KVStore, owner swap.Address, ticker string) (bool, error)

	// TransferChecked moves amount of ticker from the account of from to
	// the account of to. Given authority must own the source account and
	// decimals must match the precision of the asset.
	TransferChecked(db swap.KVStore, authority swap.Condition, from, to swap.Address, ticker string, amount uint64, decimals uint32) error

	// CloseAccount deletes an empty holding account. Given authority must
	// own the account.
	CloseAccount(db swap.KVStore, authority swap.Condition, owner swap.Address, ticker string) error
}

// BaseController is the Controller implementation backed by the asset and
// account buckets.
type BaseController struct {
	assets   orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that operates on the default buckets.
func NewController() BaseController {
	return BaseController{
		assets:   NewAssetBucket(),
		accounts: NewAccountBucket(),
	}
}

func (c BaseController) Asset(db swap.ReadOnlyKVStore, ticker string) (*Asset, error) {
	var a Asset
	if err := c.assets.One(db, []byte(ticker), &a); err != nil {
		return nil, errors.Wrapf(err, "asset %q", ticker)
	}
	return &a, nil
}

func (c BaseController) Account(db swap.ReadOnlyKVStore, owner swap.Address, ticker string) (*Account, error) {
	var a Account
	if err := c.accounts.One(db, AccountKey(owner, ticker), &a); err != nil {
		return nil, errors.Wrapf(err, "%s account of %s", ticker, owner)
	}
	return &a, nil
}

func (c BaseController) Balance(db swap.ReadOnlyKVStore, owner swap.Address, ticker string) (*uint256.Int, error) {
	a, err := c.Account(db, owner, ticker)
	if err != nil {
		return nil, err
	}
	return a.Amount(), nil
}

func (c BaseController) OpenAccount(db swap.KVStore, owner swap.Address, ticker string) error {
	created, err := c.EnsureAccount(db, owner, ticker)
	if err != nil {
		return err
	}
	if !created {
		return errors.Wrapf(errors.ErrDuplicate, "%s account of %s", ticker, owner)
	}
	return nil
}

func (c BaseController) EnsureAccount(db swap.KVStore, owner swap.Address, ticker string) (bool, error) {
	if _, err := c.Asset(db, ticker); err != nil {
		return false, err
	}
	key := AccountKey(owner, ticker)
	switch err := c.accounts.Has(db, key); {
	case err == nil:
		return false, nil
	case !errors.ErrNotFound.Is(err):
		return false, err
	}
	acc := Account{Owner: owner, Asset: ticker}
	if err := c.accounts.Put(db, key, &acc); err != nil {
		return false, errors.Wrap(err, "cannot save account")
	}
	return true, nil
}

func (c BaseController) TransferChecked(
	db swap.KVStore,
	authority swap.Condition,
	from, to swap.Address,
	ticker string,
	amount uint64,
	decimals uint32,
) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be greater than zero")
	}
	if !authority.Address().Equals(from) {
		return errors.Wrap(errors.ErrUnauthorized, "authority does not own the source account")
	}
	asset, err := c.Asset(db, ticker)
	if err != nil {
		return err
	}
	if asset.Decimals != decimals {
		return errors.Wrapf(errors.ErrInput, "%s uses %d decimals, not %d", ticker, asset.Decimals, decimals)
	}

	src, err := c.Account(db, from, ticker)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to, ticker)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	value := uint256.NewInt(amount)
	srcAmount := src.Amount()
	if srcAmount.Lt(value) {
		return errors.Wrapf(errors.ErrBalance, "%s account of %s", ticker, from)
	}
	if from.Equals(to) {
		return nil
	}
	dstAmount, overflow := new(uint256.Int).AddOverflow(dst.Amount(), value)
	if overflow {
		return errors.Wrapf(errors.ErrOverflow, "%s account of %s", ticker, to)
	}
	src.SetAmount(srcAmount.Sub(srcAmount, value))
	dst.SetAmount(dstAmount)

	if err := c.accounts.Put(db, AccountKey(from, ticker), src); err != nil {
		return errors.Wrap(err, "cannot save source account")
	}
	if err := c.accounts.Put(db, AccountKey(to, ticker), dst); err != nil {
		return errors.Wrap(err, "cannot save destination account")
	}
	return nil
}

func (c BaseController) CloseAccount(db swap.KVStore, authority swap.Condition, owner swap.Address, ticker string) error {
	if !authority.Address().Equals(owner) {
		return errors.Wrap(errors.ErrUnauthorized, "authority does not own the account")
	}
	acc, err := c.Account(db, owner, ticker)
	if err != nil {
		return err
	}
	if !acc.Amount().IsZero() {
		return errors.Wrap(errors.ErrState, "account balance is not zero")
	}
	return c.accounts.Delete(db, AccountKey(owner, ticker))
}

// Issue credits given amount to the holding account, creating it if needed.
// It is not bound by any authority and must only be used during genesis and
// in tests.
func (c BaseController) Issue(db swap.KVStore, owner swap.Address, ticker string, amount *uint256.Int) error {
	if _, err := c.EnsureAccount(db, owner, ticker); err != nil {
		return err
	}
	acc, err := c.Account(db, owner, ticker)
	if err != nil {
		return err
	}
	total, overflow := new(uint256.Int).AddOverflow(acc.Amount(), amount)
	if overflow {
		return errors.Wrapf(errors.ErrOverflow, "%s account of %s", ticker, owner)
	}
	acc.SetAmount(total)
	return c.accounts.Put(db, AccountKey(owner, ticker), acc)
}
