package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/swaptest/assert"
	"github.com/iov-one/swap/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack swap.Handler
		tx    swap.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: swaptest.Decorate(&swaptest.Handler{}, utils.NewActionTagger()),
			tx:    &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "offer/create"}},
			tags:  []common.KVPair{stringTag(utils.ActionKey, "offer/create")},
		},
		"passes through error": {
			stack: swaptest.Decorate(&swaptest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "offer/create"}},
			err:   errors.ErrHuman,
		},
		"tags are additive": {
			stack: swaptest.Decorate(&swaptest.Handler{
				DeliverResult: swap.DeliverResult{Tags: []common.KVPair{stringTag("offer", "0102")}},
			}, utils.NewActionTagger()),
			tx:   &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "offer/cancel"}},
			tags: []common.KVPair{stringTag("offer", "0102"), stringTag(utils.ActionKey, "offer/cancel")},
		},
		"broken message is rejected": {
			stack: swaptest.Decorate(&swaptest.Handler{}, utils.NewActionTagger()),
			tx:    &swaptest.Tx{Err: errors.ErrInput},
			err:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			res, err := tc.stack.Deliver(context.Background(), db, tc.tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.err != nil {
				return
			}
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
