package errors

import (
	"errors"
)

const (
	// SuccessABCICode is the code of every accepted transaction and query.
	SuccessABCICode = 0

	// internalABCICode is returned for errors that were not created from a
	// registered error. Their message is replaced by internalABCILog unless
	// the application runs in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response describing given
// error.
//
// Registered errors, and any error providing an ABCICode method, expose
// their code and full message. Every other error is internal: code 1 and a
// generic log, or the real message in debug mode. The log never contains a
// stack trace, format the error with %+v to get one.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	if code == internalABCICode && !debug {
		return code, internalABCILog
	}
	return code, err.Error()
}

// ABCIError rebuilds an error from the code and log of an ABCI response.
// A registered code gives back the registered error, so that
//
//	errors.ErrBalance.Is(err)
//
// works on the client side. An unknown code never matches any registered
// error. Only clients should use it.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok {
		return Wrap(e, log)
	}
	return Wrap(&Error{code: code, desc: "unknown error code"}, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the cause chain of err and returns the first ABCI code
// found, or the internal error code.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return internalABCICode
}

// Redact hides every error that does not come from a registered error
// behind a generic internal error. Panics are always hidden, since their
// message may leak implementation details. In debug mode the error is
// returned as is.
func Redact(err error, debug bool) error {
	switch {
	case debug:
		return err
	case ErrPanic.Is(err), abciCode(err) == internalABCICode:
		return errors.New(internalABCILog)
	default:
		return err
	}
}
