package sigs

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/swaptest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	swaptest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ swap.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &swaptest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: swaptest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return swap.Marshal(msg)
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []swap.Condition
}

var _ swap.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &swap.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &swap.DeliverResult{}, nil
}
