package sigs

import "github.com/iov-one/swap/errors"

// x/sigs reserves 20 ~ 29.
var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the stored nonce of the signer.
	ErrInvalidSequence = errors.Register(20, "invalid sequence number")
)
