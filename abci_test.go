package swap

import (
	"fmt"
	"testing"

	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/swaptest/assert"
)

func TestFailedResponses(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantLog  string
		wantCode uint32
	}{
		"stdlib error is internal": {
			err:      fmt.Errorf("disk on fire"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib error in debug mode": {
			err:      fmt.Errorf("disk on fire"),
			debug:    true,
			wantLog:  "disk on fire",
			wantCode: 1,
		},
		"unauthorized cancel": {
			err:      errors.Wrap(errors.ErrUnauthorized, "not the maker"),
			wantLog:  "not the maker: unauthorized",
			wantCode: errors.ErrUnauthorized.ABCICode(),
		},
		"strict balance check": {
			err:      errors.ErrBalance.New("offer 1"),
			debug:    true,
			wantLog:  "offer 1: insufficient balance",
			wantCode: 12,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := DeliverResponse(nil, tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, dres.Code)
			assert.Equal(t, "cannot deliver tx: "+tc.wantLog, dres.Log)

			cres := CheckResponse(&CheckResult{Log: "ignored"}, tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, cres.Code)
			assert.Equal(t, "cannot check tx: "+tc.wantLog, cres.Log)
		})
	}
}

func TestSuccessfulResponses(t *testing.T) {
	res := &DeliverResult{Data: []byte("key"), Log: "created"}
	res.AddTag(TagOffer, "0102")
	res.AddTag(TagAction, "offer/create")

	dres := DeliverResponse(res, nil, false)
	assert.Equal(t, uint32(0), dres.Code)
	assert.Equal(t, []byte("key"), dres.Data)
	assert.Equal(t, "created", dres.Log)
	assert.Equal(t, 2, len(dres.Tags))

	back, err := ParseDeliverResponse(dres)
	assert.Nil(t, err)
	action, ok := back.TagValue(TagAction)
	assert.Equal(t, true, ok)
	assert.Equal(t, "offer/create", action)
	_, ok = back.TagValue("missing")
	assert.Equal(t, false, ok)

	cres := CheckResponse(&CheckResult{Log: "aok"}, nil, false)
	assert.Equal(t, "aok", cres.Log)
	assert.Nil(t, cres.Data)

	assert.Equal(t, uint32(0), CheckResponse(nil, nil, false).Code)
	assert.Equal(t, uint32(0), DeliverResponse(nil, nil, false).Code)
}

func TestParseFailedResponses(t *testing.T) {
	_, err := ParseDeliverResponse(DeliverResponse(nil, errors.ErrNotFound.New("offer"), false))
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = ParseCheckResponse(CheckResponse(nil, errors.Wrap(errors.ErrBalance, "taker"), false))
	assert.IsErr(t, errors.ErrBalance, err)

	got, err := ParseCheckResponse(CheckResponse(&CheckResult{Data: []byte{1}}, nil, false))
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, got.Data)
}
