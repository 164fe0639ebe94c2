package app

import (
	"context"
	"testing"

	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestRouter(t *testing.T) {
	var (
		r   = NewRouter()
		msg = &swaptest.Msg{RoutePath: "test/good"}
		tx  = &swaptest.Tx{Msg: msg}
		bad = &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "test/bad"}}
		ctx = context.Background()
		db  = store.MemStore()
		h   = &swaptest.Handler{}
	)
	r.Handle(msg.Path(), h)

	_, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	_, err = r.Check(ctx, db, bad)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, bad)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &swaptest.Tx{Err: errors.ErrInput})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestRouterRegistration(t *testing.T) {
	cases := map[string]struct {
		paths     []string
		wantPanic bool
	}{
		"distinct paths":        {paths: []string{"offer/create", "offer/cancel"}},
		"path registered twice": {paths: []string{"offer/create", "offer/create"}, wantPanic: true},
		"invalid characters":    {paths: []string{"offer?create"}, wantPanic: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			register := func() {
				r := NewRouter()
				for _, p := range tc.paths {
					r.Handle(p, &swaptest.Handler{})
				}
			}
			if tc.wantPanic {
				assert.Panics(t, register)
			} else {
				register()
			}
		})
	}
}
