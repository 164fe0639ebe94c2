package x

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Authenticator reveals who authorized the current transaction. Handlers
// receive one in their constructor, so the signature scheme stays
// pluggable.
type Authenticator interface {
	// GetConditions returns every condition that authorized the
	// transaction, the acting party first.
	GetConditions(swap.Context) []swap.Condition
	// HasAddress is true if any of the conditions has given address.
	HasAddress(swap.Context, swap.Address) bool
}

// ChainAuth merges several authenticators. Conditions keep the order of
// the authenticators.
func ChainAuth(impls ...Authenticator) Authenticator {
	return authChain(impls)
}

type authChain []Authenticator

func (c authChain) GetConditions(ctx swap.Context) []swap.Condition {
	var res []swap.Condition
	for _, a := range c {
		res = append(res, a.GetConditions(ctx)...)
	}
	return res
}

func (c authChain) HasAddress(ctx swap.Context, addr swap.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the acting party of the transaction, like the maker
// of a new offer or the taker fulfilling one. It is nil if nobody signed.
func MainSigner(ctx swap.Context, auth Authenticator) swap.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner returns the acting party of the transaction, or an
// unauthorized error naming the missing role.
func RequireSigner(ctx swap.Context, auth Authenticator, role string) (swap.Condition, error) {
	if s := MainSigner(ctx, auth); s != nil {
		return s, nil
	}
	return nil, errors.Wrapf(errors.ErrUnauthorized, "missing %s signature", role)
}

// SignerOf returns the condition with given address if it authorized the
// transaction. Handlers use it when a stored record, not the message,
// names who may act, like the maker of an offer being cancelled.
func SignerOf(ctx swap.Context, auth Authenticator, addr swap.Address) (swap.Condition, error) {
	for _, c := range auth.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", addr)
}
