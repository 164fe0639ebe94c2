package swap

import (
	"fmt"

	"github.com/iov-one/swap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// Tags attached to delivered transactions. Tendermint indexes them, so
// clients can search for every transaction touching an offer.
const (
	// TagAction holds the path of the executed message, e.g. offer/fulfill.
	TagAction = "action"
	// TagOffer holds the hex encoded key of the offer a message acted on.
	TagOffer = "offer"
)

// CheckResult is the outcome of a successful check.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is a human-readable informational string.
	Log string
}

// DeliverResult is the outcome of a successful delivery. Failures are
// always reported as errors.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the key of a created
	// offer.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// Tags are indexed by tendermint.
	Tags []common.KVPair
}

// AddTag appends a tag to the result.
func (r *DeliverResult) AddTag(key, value string) {
	r.Tags = append(r.Tags, common.KVPair{Key: []byte(key), Value: []byte(value)})
}

// TagValue returns the value of the first tag with given key.
func (r DeliverResult) TagValue(key string) (string, bool) {
	for _, t := range r.Tags {
		if string(t.Key) == key {
			return string(t.Value), true
		}
	}
	return "", false
}

// CheckResponse builds the CheckTx response for the outcome of a check.
// Unless debug is set, the log of an internal error is redacted.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{Data: res.Data, Log: res.Log}
}

// DeliverResponse builds the DeliverTx response for the outcome of a
// delivery. Unless debug is set, the log of an internal error is redacted.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return abci.ResponseDeliverTx{Data: res.Data, Log: res.Log, Tags: res.Tags}
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	return code, fmt.Sprintf("cannot %s tx: %s", phase, log)
}

// ParseDeliverResponse is the client side inverse of DeliverResponse. A
// failed delivery is returned as the registered error of its code.
func ParseDeliverResponse(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{Data: res.Data, Log: res.Log, Tags: res.Tags}, nil
}

// ParseCheckResponse is the client side inverse of CheckResponse.
func ParseCheckResponse(res abci.ResponseCheckTx) (*CheckResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &CheckResult{Data: res.Data, Log: res.Log}, nil
}
