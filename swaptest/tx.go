package swaptest

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
)

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg swap.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ swap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (swap.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "swaptest.Tx" }
func (*Tx) ProtoMessage()     {}

// Msg represents a message processed within a single transaction.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string `json:"route_path,omitempty"`
	// Serialized represents the payload of this message.
	Serialized []byte `json:"serialized,omitempty"`
	// Err if set is returned by the Validate method and by Marshal.
	Err error `json:"-"`
}

var _ swap.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return fmt.Sprintf("swaptest.Msg{%s %X}", m.RoutePath, m.Serialized) }
func (*Msg) ProtoMessage()    {}

// Marshal encodes the path and the payload. Err is never serialized.
func (m *Msg) Marshal() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return proto.Marshal(&msgWire{RoutePath: m.RoutePath, Serialized: m.Serialized})
}

func (m *Msg) Unmarshal(raw []byte) error {
	var w msgWire
	if err := proto.Unmarshal(raw, &w); err != nil {
		return err
	}
	m.RoutePath, m.Serialized = w.RoutePath, w.Serialized
	return nil
}

// msgWire is the protobuf layout of Msg.
type msgWire struct {
	RoutePath  string `protobuf:"bytes,1,opt,name=route_path,proto3"`
	Serialized []byte `protobuf:"bytes,2,opt,name=serialized,proto3"`
}

func (w *msgWire) Reset()         { *w = msgWire{} }
func (w *msgWire) String() string { return proto.CompactTextString(w) }
func (*msgWire) ProtoMessage()    {}
