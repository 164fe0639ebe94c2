package swaptest

import (
	"context"
	"fmt"

	"github.com/iov-one/swap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. It is
	// always returned last by GetConditions.
	Signer swap.Condition

	// Signers represents an authentication of multiple signers.
	Signers []swap.Condition
}

func (a *Auth) GetConditions(swap.Context) []swap.Condition {
	if a.Signer != nil {
		conds := make([]swap.Condition, 0, len(a.Signers)+1)
		conds = append(conds, a.Signers...)
		return append(conds, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx swap.Context, addr swap.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx swap.Context, permissions ...swap.Condition) swap.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx swap.Context) []swap.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]swap.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []swap.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx swap.Context, addr swap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
