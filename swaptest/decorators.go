package swaptest

import "github.com/iov-one/swap"

// Decorator is a mock implementation of the swap.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method, in which case the wrapped handler is not called.
// Each method call is counted, regardless of its result.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ swap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx, next swap.Checker) (*swap.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx, next swap.Deliverer) (*swap.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that passes every call through given decorator
// before reaching h.
func Decorate(h swap.Handler, d swap.Decorator) swap.Handler {
	return decorated{hn: h, dc: d}
}

type decorated struct {
	hn swap.Handler
	dc swap.Decorator
}

func (d decorated) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d decorated) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
