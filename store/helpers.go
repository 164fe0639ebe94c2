package store

import "github.com/iov-one/swap/errors"

// nothing is the bottom layer of MemStore. It holds no data and drops
// every write, so the btree above it keeps all state in memory.
type nothing struct{}

var _ KVStore = nothing{}

func (nothing) Get([]byte) ([]byte, error)                    { return nil, nil }
func (nothing) Has([]byte) (bool, error)                      { return false, nil }
func (nothing) Set(_, _ []byte) error                         { return nil }
func (nothing) Delete([]byte) error                           { return nil }
func (nothing) Iterator(_, _ []byte) (Iterator, error)        { return exhausted{}, nil }
func (nothing) ReverseIterator(_, _ []byte) (Iterator, error) { return exhausted{}, nil }

// exhausted is an iterator past its last element.
type exhausted struct{}

var _ Iterator = exhausted{}

func (exhausted) Valid() bool   { return false }
func (exhausted) Key() []byte   { return nil }
func (exhausted) Value() []byte { return nil }
func (exhausted) Close()        {}
func (exhausted) Next() error {
	return errors.Wrap(errors.ErrState, "iterator exhausted")
}
