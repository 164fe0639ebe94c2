package token

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x"
)

// RegisterQuery registers the asset and account buckets as "/assets" and
// "/accounts".
func RegisterQuery(qr swap.QueryRouter) {
	NewAssetBucket().Register("/assets", qr)
	NewAccountBucket().Register("/accounts", qr)
}

// RegisterRoutes registers the handlers of this extension.
func RegisterRoutes(r swap.Registry, auth x.Authenticator) {
	r.Handle(pathRegisterAssetMsg, NewRegisterAssetHandler(auth))
	r.Handle(pathIssueMsg, NewIssueHandler(auth))
}

// NewRegisterAssetHandler returns a handler registering assets. Only the
// issuer configured for the token extension can use it.
func NewRegisterAssetHandler(auth x.Authenticator) swap.Handler {
	return &registerAssetHandler{
		auth: auth,
		ctrl: NewController(),
	}
}

type registerAssetHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

func (h *registerAssetHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swap.CheckResult{}, nil
}

func (h *registerAssetHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	asset := Asset{Ticker: msg.Ticker, Name: msg.Name, Decimals: msg.Decimals}
	if err := h.ctrl.assets.Put(db, []byte(asset.Ticker), &asset); err != nil {
		return nil, errors.Wrap(err, "cannot save asset")
	}
	return &swap.DeliverResult{Data: []byte(asset.Ticker)}, nil
}

func (h *registerAssetHandler) validate(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*RegisterAssetMsg, error) {
	var msg RegisterAssetMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the issuer can register assets")
	}
	switch err := h.ctrl.assets.Has(db, []byte(msg.Ticker)); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "asset %q", msg.Ticker)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// NewIssueHandler returns a handler minting registered assets. Only the
// issuer configured for the token extension can use it.
func NewIssueHandler(auth x.Authenticator) swap.Handler {
	return &issueHandler{
		auth: auth,
		ctrl: NewController(),
	}
}

type issueHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

func (h *issueHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swap.CheckResult{}, nil
}

func (h *issueHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Issue(db, msg.Recipient, msg.Ticker, uint256.NewInt(msg.Amount)); err != nil {
		return nil, err
	}
	return &swap.DeliverResult{Data: AccountKey(msg.Recipient, msg.Ticker)}, nil
}

func (h *issueHandler) validate(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the issuer can issue")
	}
	if _, err := h.ctrl.Asset(db, msg.Ticker); err != nil {
		return nil, err
	}
	return &msg, nil
}
