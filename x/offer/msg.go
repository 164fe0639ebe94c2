package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/token"
)

const (
	pathCreateOfferMsg  = "offer/create"
	pathFulfillOfferMsg = "offer/fulfill"
	pathCancelOfferMsg  = "offer/cancel"
)

var _ swap.Msg = (*CreateOfferMsg)(nil)
var _ swap.Msg = (*FulfillOfferMsg)(nil)
var _ swap.Msg = (*CancelOfferMsg)(nil)

// CreateOfferMsg opens a new offer signed by the maker.
type CreateOfferMsg struct {
	OfferID         uint64 `protobuf:"varint,1,opt,name=offer_id,proto3" json:"offer_id"`
	OfferedAmountA  uint64 `protobuf:"varint,2,opt,name=offered_amount_a,proto3" json:"offered_amount_a"`
	ExpectedAmountB uint64 `protobuf:"varint,3,opt,name=expected_amount_b,proto3" json:"expected_amount_b"`
	AssetA          string `protobuf:"bytes,4,opt,name=asset_a,proto3" json:"asset_a"`
	AssetB          string `protobuf:"bytes,5,opt,name=asset_b,proto3" json:"asset_b"`
}

func (m *CreateOfferMsg) Reset()         { *m = CreateOfferMsg{} }
func (m *CreateOfferMsg) String() string { return proto.CompactTextString(m) }
func (*CreateOfferMsg) ProtoMessage()    {}

func (CreateOfferMsg) Path() string {
	return pathCreateOfferMsg
}

func (m *CreateOfferMsg) Validate() error {
	if m.OfferedAmountA == 0 {
		return errors.Wrap(errors.ErrAmount, "offered amount must be greater than zero")
	}
	if m.ExpectedAmountB == 0 {
		return errors.Wrap(errors.ErrAmount, "expected amount must be greater than zero")
	}
	if m.AssetA == m.AssetB {
		return errors.Wrap(ErrInvalidAssetPair, m.AssetA)
	}
	if !token.IsTicker(m.AssetA) {
		return errors.Wrapf(errors.ErrMsg, "invalid asset A %q", m.AssetA)
	}
	if !token.IsTicker(m.AssetB) {
		return errors.Wrapf(errors.ErrMsg, "invalid asset B %q", m.AssetB)
	}
	return nil
}

// FulfillOfferMsg takes an offer. It is signed by the taker.
type FulfillOfferMsg struct {
	Maker   swap.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker"`
	OfferID uint64       `protobuf:"varint,2,opt,name=offer_id,proto3" json:"offer_id"`
	// AssetB is the asset the taker pays with. It must match the offer.
	AssetB string `protobuf:"bytes,3,opt,name=asset_b,proto3" json:"asset_b"`
}

func (m *FulfillOfferMsg) Reset()         { *m = FulfillOfferMsg{} }
func (m *FulfillOfferMsg) String() string { return proto.CompactTextString(m) }
func (*FulfillOfferMsg) ProtoMessage()    {}

func (FulfillOfferMsg) Path() string {
	return pathFulfillOfferMsg
}

func (m *FulfillOfferMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if !token.IsTicker(m.AssetB) {
		return errors.Wrapf(errors.ErrMsg, "invalid asset B %q", m.AssetB)
	}
	return nil
}

// CancelOfferMsg closes an offer and returns the vault content to the maker.
// It must be signed by the maker.
type CancelOfferMsg struct {
	Maker   swap.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker"`
	OfferID uint64       `protobuf:"varint,2,opt,name=offer_id,proto3" json:"offer_id"`
}

func (m *CancelOfferMsg) Reset()         { *m = CancelOfferMsg{} }
func (m *CancelOfferMsg) String() string { return proto.CompactTextString(m) }
func (*CancelOfferMsg) ProtoMessage()    {}

func (CancelOfferMsg) Path() string {
	return pathCancelOfferMsg
}

func (m *CancelOfferMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	return nil
}
