package rent

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/x/token"
)

// Controller reserves and releases deposits.
type Controller struct {
	tokens token.Controller
}

// NewController returns a rent controller moving deposits with given token
// controller.
func NewController(tokens token.Controller) Controller {
	return Controller{tokens: tokens}
}

// Reserve charges the configured deposit for the object referenced by ref to
// the payer. It is a no-op when deposits are disabled.
func (c Controller) Reserve(db swap.KVStore, payer swap.Condition, ref []byte) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if conf.Amount == 0 {
		return nil
	}
	bucket := NewDepositBucket()
	if err := bucket.Has(db, ref); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "deposit for %q", ref)
	}

	asset, err := c.tokens.Asset(db, conf.Asset)
	if err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	bal, err := c.tokens.Balance(db, payer.Address(), conf.Asset)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	if bal == nil || bal.Lt(uint256.NewInt(conf.Amount)) {
		return errors.Wrapf(errors.ErrBalance, "deposit of %d %s", conf.Amount, conf.Asset)
	}

	pool := PoolCondition().Address()
	if _, err := c.tokens.EnsureAccount(db, pool, conf.Asset); err != nil {
		return errors.Wrap(err, "rent pool")
	}
	err = c.tokens.TransferChecked(db, payer, payer.Address(), pool, conf.Asset, conf.Amount, asset.Decimals)
	if err != nil {
		return errors.Wrap(err, "cannot pay deposit")
	}
	dep := Deposit{Payer: payer.Address(), Asset: conf.Asset, Amount: conf.Amount}
	return bucket.Put(db, ref, &dep)
}

// Release pays the deposit of the object referenced by ref to the
// beneficiary and forgets it. It is a no-op if no deposit was taken.
func (c Controller) Release(db swap.KVStore, ref []byte, beneficiary swap.Address) error {
	bucket := NewDepositBucket()
	var dep Deposit
	switch err := bucket.One(db, ref, &dep); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}

	asset, err := c.tokens.Asset(db, dep.Asset)
	if err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if _, err := c.tokens.EnsureAccount(db, beneficiary, dep.Asset); err != nil {
		return errors.Wrap(err, "beneficiary account")
	}
	pool := PoolCondition()
	err = c.tokens.TransferChecked(db, pool, pool.Address(), beneficiary, dep.Asset, dep.Amount, asset.Decimals)
	if err != nil {
		return errors.Wrap(err, "cannot refund deposit")
	}
	return bucket.Delete(db, ref)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case errors.ErrNotFound.Is(err):
		// Deposits are disabled unless configured.
		return &conf, nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// RegisterQuery registers the deposit bucket as "/deposits".
func RegisterQuery(qr swap.QueryRouter) {
	NewDepositBucket().Register("/deposits", qr)
}
