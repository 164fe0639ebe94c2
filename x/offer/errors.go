package offer

import "github.com/iov-one/swap/errors"

// x/offer reserves 100 ~ 109.
var (
	// ErrInvalidAssetPair is returned when the offered and the expected
	// asset are the same.
	ErrInvalidAssetPair = errors.Register(100, "invalid asset pair")
)
