package offer

import (
	"encoding/hex"

	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/x"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/token"
)

// Depositor charges and refunds storage deposits of offers and vaults.
type Depositor interface {
	Reserve(db swap.KVStore, payer swap.Condition, ref []byte) error
	Release(db swap.KVStore, ref []byte, beneficiary swap.Address) error
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swap.Registry, auth x.Authenticator, tokens token.Controller, deposits Depositor) {
	bucket := NewBucket()
	r.Handle(pathCreateOfferMsg, CreateOfferHandler{auth: auth, bucket: bucket, tokens: tokens, deposits: deposits})
	r.Handle(pathFulfillOfferMsg, FulfillOfferHandler{auth: auth, bucket: bucket, tokens: tokens, deposits: deposits})
	r.Handle(pathCancelOfferMsg, CancelOfferHandler{auth: auth, bucket: bucket, tokens: tokens, deposits: deposits})
}

// RegisterQuery will register this bucket as "/offers"
func RegisterQuery(qr swap.QueryRouter) {
	NewBucket().Register("/offers", qr)
}

// CreateOfferHandler opens an offer and moves the offered amount into a
// new custody vault.
type CreateOfferHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	tokens   token.Controller
	deposits Depositor
}

var _ swap.Handler = CreateOfferHandler{}

// Check does all the validation, without writing the offer.
func (h CreateOfferHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swap.CheckResult{}, nil
}

// Deliver opens the vault, funds it and stores the offer. The offer key is
// returned as the result data.
func (h CreateOfferHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	in, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg := in.msg
	key := Key(in.maker.Address(), msg.OfferID)

	bump, err := FindCustodyBump(db, h.tokens, key, msg.AssetA)
	if err != nil {
		return nil, err
	}
	vault := CustodyAuthority(key, bump).Address()
	if err := h.tokens.OpenAccount(db, vault, msg.AssetA); err != nil {
		return nil, errors.Wrap(err, "cannot open vault")
	}
	err = h.tokens.TransferChecked(db, in.maker, in.maker.Address(), vault, msg.AssetA, msg.OfferedAmountA, in.decimals)
	if err != nil {
		return nil, errors.Wrap(err, "cannot fund vault")
	}

	offer := Offer{
		OfferID:         msg.OfferID,
		Maker:           in.maker.Address(),
		AssetA:          msg.AssetA,
		AssetB:          msg.AssetB,
		ExpectedAmountB: msg.ExpectedAmountB,
		CustodyBump:     uint32(bump),
	}
	if err := h.bucket.Put(db, key, &offer); err != nil {
		return nil, errors.Wrap(err, "cannot store offer")
	}

	if err := h.deposits.Reserve(db, in.maker, vaultRef(vault, msg.AssetA)); err != nil {
		return nil, errors.Wrap(err, "vault deposit")
	}
	if err := h.deposits.Reserve(db, in.maker, offerRef(key)); err != nil {
		return nil, errors.Wrap(err, "offer deposit")
	}
	return settled(key, key), nil
}

type createInput struct {
	msg      *CreateOfferMsg
	maker    swap.Condition
	decimals uint32
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateOfferHandler) validate(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*createInput, error) {
	var msg CreateOfferMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	maker, err := x.RequireSigner(ctx, h.auth, "maker")
	if err != nil {
		return nil, err
	}
	assetA, err := h.tokens.Asset(db, msg.AssetA)
	if err != nil {
		return nil, err
	}
	if _, err := h.tokens.Asset(db, msg.AssetB); err != nil {
		return nil, err
	}

	key := Key(maker.Address(), msg.OfferID)
	switch err := h.bucket.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "offer %d", msg.OfferID)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	if err := requireMoreThan(db, h.tokens, maker.Address(), msg.AssetA, msg.OfferedAmountA); err != nil {
		return nil, err
	}
	return &createInput{msg: &msg, maker: maker, decimals: assetA.Decimals}, nil
}

// FulfillOfferHandler settles an offer: the vault content goes to the taker
// and the expected amount of asset B goes from the taker to the maker.
type FulfillOfferHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	tokens   token.Controller
	deposits Depositor
}

var _ swap.Handler = FulfillOfferHandler{}

// Check does all the validation, without moving any funds.
func (h FulfillOfferHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swap.CheckResult{}, nil
}

// Deliver swaps the assets and closes the offer together with its vault.
func (h FulfillOfferHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	offer, taker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key := offer.Key()

	if err := provision(db, h.tokens, h.deposits, taker, taker.Address(), offer.AssetA); err != nil {
		return nil, errors.Wrap(err, "taker account")
	}
	if err := drainVault(db, h.tokens, h.deposits, offer, taker.Address()); err != nil {
		return nil, err
	}

	if err := provision(db, h.tokens, h.deposits, taker, offer.Maker, offer.AssetB); err != nil {
		return nil, errors.Wrap(err, "maker account")
	}
	assetB, err := h.tokens.Asset(db, offer.AssetB)
	if err != nil {
		return nil, err
	}
	err = h.tokens.TransferChecked(db, taker, taker.Address(), offer.Maker, offer.AssetB, offer.ExpectedAmountB, assetB.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "cannot pay the maker")
	}

	if err := closeOffer(db, h.bucket, h.deposits, offer); err != nil {
		return nil, err
	}
	return settled(key, nil), nil
}

// validate does all common pre-processing between Check and Deliver.
func (h FulfillOfferHandler) validate(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*Offer, swap.Condition, error) {
	var msg FulfillOfferMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	taker, err := x.RequireSigner(ctx, h.auth, "taker")
	if err != nil {
		return nil, nil, err
	}

	offer, err := loadOffer(db, h.bucket, msg.Maker, msg.OfferID)
	if err != nil {
		return nil, nil, err
	}
	if offer.AssetB != msg.AssetB {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "offer expects %s, not %s", offer.AssetB, msg.AssetB)
	}

	bal, err := h.tokens.Balance(db, taker.Address(), offer.AssetB)
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker account")
	}
	if !bal.Gt(uint256.NewInt(offer.ExpectedAmountB)) {
		return nil, nil, errors.Wrapf(errors.ErrBalance, "taker must hold more than %d %s", offer.ExpectedAmountB, offer.AssetB)
	}
	return offer, taker, nil
}

// CancelOfferHandler closes an offer and returns the vault content to the
// maker.
type CancelOfferHandler struct {
	auth     x.Authenticator
	bucket   orm.ModelBucket
	tokens   token.Controller
	deposits Depositor
}

var _ swap.Handler = CancelOfferHandler{}

// Check does all the validation, without moving any funds.
func (h CancelOfferHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swap.CheckResult{}, nil
}

// Deliver refunds the maker and closes the offer together with its vault.
func (h CancelOfferHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	offer, maker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := provision(db, h.tokens, h.deposits, maker, offer.Maker, offer.AssetA); err != nil {
		return nil, errors.Wrap(err, "maker account")
	}
	if err := drainVault(db, h.tokens, h.deposits, offer, offer.Maker); err != nil {
		return nil, err
	}
	if err := closeOffer(db, h.bucket, h.deposits, offer); err != nil {
		return nil, err
	}
	return settled(offer.Key(), nil), nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelOfferHandler) validate(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*Offer, swap.Condition, error) {
	var msg CancelOfferMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	offer, err := loadOffer(db, h.bucket, msg.Maker, msg.OfferID)
	if err != nil {
		return nil, nil, err
	}
	maker, err := x.SignerOf(ctx, h.auth, offer.Maker)
	if err != nil {
		return nil, nil, errors.Wrap(err, "only the maker can cancel")
	}
	return offer, maker, nil
}

// loadOffer returns the open offer or ErrNotFound.
func loadOffer(db swap.ReadOnlyKVStore, bucket orm.ModelBucket, maker swap.Address, offerID uint64) (*Offer, error) {
	var offer Offer
	if err := bucket.One(db, Key(maker, offerID), &offer); err != nil {
		return nil, errors.Wrapf(err, "offer %d of %s", offerID, maker)
	}
	return &offer, nil
}

// drainVault moves the whole vault content to the beneficiary and closes
// the vault. Its deposit is refunded to the maker.
func drainVault(db swap.KVStore, tokens token.Controller, deposits Depositor, offer *Offer, beneficiary swap.Address) error {
	custody := offer.Custody()
	vault := custody.Address()

	asset, err := tokens.Asset(db, offer.AssetA)
	if err != nil {
		return err
	}
	bal, err := tokens.Balance(db, vault, offer.AssetA)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if !bal.IsUint64() {
		return errors.Wrap(errors.ErrOverflow, "vault balance")
	}
	if err := tokens.TransferChecked(db, custody, vault, beneficiary, offer.AssetA, bal.Uint64(), asset.Decimals); err != nil {
		return errors.Wrap(err, "cannot drain vault")
	}
	if err := tokens.CloseAccount(db, custody, vault, offer.AssetA); err != nil {
		return errors.Wrap(err, "cannot close vault")
	}
	if err := deposits.Release(db, vaultRef(vault, offer.AssetA), offer.Maker); err != nil {
		return errors.Wrap(err, "vault deposit")
	}
	return nil
}

// closeOffer deletes the offer and refunds its deposit to the maker.
func closeOffer(db swap.KVStore, bucket orm.ModelBucket, deposits Depositor, offer *Offer) error {
	key := offer.Key()
	if err := bucket.Delete(db, key); err != nil {
		return errors.Wrap(err, "cannot delete offer")
	}
	if err := deposits.Release(db, offerRef(key), offer.Maker); err != nil {
		return errors.Wrap(err, "offer deposit")
	}
	return nil
}

// provision creates the holding account of owner unless it exists. The
// payer is charged the deposit of a newly created account.
func provision(db swap.KVStore, tokens token.Controller, deposits Depositor, payer swap.Condition, owner swap.Address, ticker string) error {
	created, err := tokens.EnsureAccount(db, owner, ticker)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	return deposits.Reserve(db, payer, accountRef(owner, ticker))
}

// requireMoreThan ensures that the owner balance is strictly greater than
// the amount.
func requireMoreThan(db swap.ReadOnlyKVStore, tokens token.Controller, owner swap.Address, ticker string, amount uint64) error {
	bal, err := tokens.Balance(db, owner, ticker)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrBalance, "no %s account", ticker)
	case err != nil:
		return err
	}
	if !bal.Gt(uint256.NewInt(amount)) {
		return errors.Wrapf(errors.ErrBalance, "must hold more than %d %s", amount, ticker)
	}
	return nil
}

func offerRef(key []byte) []byte {
	return rent.Ref("offer", key)
}

func vaultRef(vault swap.Address, ticker string) []byte {
	return accountRef(vault, ticker)
}

func accountRef(owner swap.Address, ticker string) []byte {
	return rent.Ref("account", token.AccountKey(owner, ticker))
}

// settled returns the result of a message acting on the offer with given
// key, tagged so the offer history can be searched.
func settled(key, data []byte) *swap.DeliverResult {
	res := &swap.DeliverResult{Data: data}
	res.AddTag(swap.TagOffer, hex.EncodeToString(key))
	return res
}
