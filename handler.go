package swap

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/swap/errors"
)

// Handler is a core engine that can process a few specific messages
// This could represent "create an offer", or "fulfill an offer"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or atomic execution, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Stream expects an array of json elements stored under given key and allows
// to process them one by one.
// The returned function decodes the next element into obj. It returns
// ErrEmpty when there are no more elements, ErrInput when an element cannot
// be decoded and ErrState on any call after one of the above.
// Stream itself returns ErrEmpty if the key is missing.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	data, ok := o[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q key", key)
	}
	dec := json.NewDecoder(bytes.NewReader(data))

	var opened, closed bool
	return func(obj interface{}) error {
		if closed {
			return errors.Wrap(errors.ErrState, "stream closed")
		}
		if !opened {
			opened = true
			tok, err := dec.Token()
			if err != nil {
				closed = true
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			if d, ok := tok.(json.Delim); !ok || d != '[' {
				closed = true
				return errors.Wrapf(errors.ErrInput, "%q must be a list", key)
			}
		}
		if !dec.More() {
			closed = true
			return errors.Wrap(errors.ErrEmpty, "end of stream")
		}
		if err := dec.Decode(obj); err != nil {
			closed = true
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
