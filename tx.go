package swap

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap/errors"
)

// Persistent is anything that can be represented in binary and loaded back.
//
// All models, messages and transactions are protobuf messages. Use Marshal
// and Unmarshal to convert them, those functions are the single place where
// the wire format is decided.
type Persistent interface {
	proto.Message
}

// Marshal serializes given object using the protobuf wire format.
func Marshal(p Persistent) ([]byte, error) {
	if p == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "cannot marshal nil")
	}
	raw, err := proto.Marshal(p)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "marshal %T: %s", p, err)
	}
	return raw, nil
}

// Unmarshal loads the protobuf serialized raw data into given object. Any
// previous state of the object is discarded.
func Unmarshal(raw []byte, p Persistent) error {
	if err := proto.Unmarshal(raw, p); err != nil {
		return errors.Wrapf(errors.ErrType, "unmarshal %T: %s", p, err)
	}
	return nil
}

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Multiple types may have the same value, and will end up at the
	// same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the fields is not valid.
	Validate() error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
//
// Each Application must define their own tx type, which
// embeds all the middlewares that we wish to use.
// sigs.SignedTx is the common interface that
// the application tx must support.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	if err := assign(destination, msg); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)
