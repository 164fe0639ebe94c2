package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

const pathRegisterAssetMsg = "token/register"

// RegisterAssetMsg adds a new asset to the registry.
type RegisterAssetMsg struct {
	Ticker   string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Name     string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals"`
}

var _ swap.Msg = (*RegisterAssetMsg)(nil)

func (m *RegisterAssetMsg) Reset()         { *m = RegisterAssetMsg{} }
func (m *RegisterAssetMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterAssetMsg) ProtoMessage()    {}

func (RegisterAssetMsg) Path() string {
	return pathRegisterAssetMsg
}

func (m *RegisterAssetMsg) Validate() error {
	a := Asset{Ticker: m.Ticker, Name: m.Name, Decimals: m.Decimals}
	if err := a.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

const pathIssueMsg = "token/issue"

// IssueMsg mints new units of a registered asset into the account of the
// recipient. Only the issuer may send it.
type IssueMsg struct {
	Recipient swap.Address `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient"`
	Ticker    string       `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker"`
	Amount    uint64       `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ swap.Msg = (*IssueMsg)(nil)

func (m *IssueMsg) Reset()         { *m = IssueMsg{} }
func (m *IssueMsg) String() string { return proto.CompactTextString(m) }
func (*IssueMsg) ProtoMessage()    {}

func (IssueMsg) Path() string {
	return pathIssueMsg
}

func (m *IssueMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if !IsTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrMsg, "invalid ticker %q", m.Ticker)
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "issued amount must be greater than zero")
	}
	return nil
}
