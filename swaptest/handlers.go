package swaptest

import (
	"github.com/iov-one/swap"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler is a mock implementation of the swap.Handler interface.
//
// Each method call is counted and the configured result returned.
type Handler struct {
	checkCall   int
	CheckResult swap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult swap.DeliverResult
	DeliverErr    error
}

var _ swap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key value pair to the store and then returns Err.
// On success DeliverTx results carry a tag with the same key and value.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ swap.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &swap.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	tags := []common.KVPair{{Key: h.Key, Value: h.Value}}
	return &swap.DeliverResult{Tags: tags}, nil
}

// PanicHandler panics with Msg on every call.
type PanicHandler struct {
	Msg string
}

var _ swap.Handler = PanicHandler{}

func (h PanicHandler) Check(swap.Context, swap.KVStore, swap.Tx) (*swap.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(swap.Context, swap.KVStore, swap.Tx) (*swap.DeliverResult, error) {
	panic(h.Msg)
}
