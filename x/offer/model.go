package offer

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/x/token"
)

// Offer is an open escrow of a single maker.
type Offer struct {
	// OfferID is chosen by the maker and unique among the maker offers.
	OfferID uint64 `protobuf:"varint,1,opt,name=offer_id,proto3" json:"offer_id"`
	// Maker is the only party that can cancel the offer and the one
	// receiving asset B.
	Maker swap.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker"`
	// AssetA is the ticker of the asset held in custody.
	AssetA string `protobuf:"bytes,3,opt,name=asset_a,proto3" json:"asset_a"`
	// AssetB is the ticker of the asset the maker expects in return.
	AssetB string `protobuf:"bytes,4,opt,name=asset_b,proto3" json:"asset_b"`
	// ExpectedAmountB is the amount of asset B a taker must pay.
	ExpectedAmountB uint64 `protobuf:"varint,5,opt,name=expected_amount_b,proto3" json:"expected_amount_b"`
	// CustodyBump is the salt used to derive the custody authority.
	CustodyBump uint32 `protobuf:"varint,6,opt,name=custody_bump,proto3" json:"custody_bump"`
}

func (o *Offer) Reset()         { *o = Offer{} }
func (o *Offer) String() string { return proto.CompactTextString(o) }
func (*Offer) ProtoMessage()    {}

var _ orm.Model = (*Offer)(nil)

// Validate ensures the Offer is valid
func (o *Offer) Validate() error {
	if err := o.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if !token.IsTicker(o.AssetA) {
		return errors.Wrapf(errors.ErrModel, "invalid asset A %q", o.AssetA)
	}
	if !token.IsTicker(o.AssetB) {
		return errors.Wrapf(errors.ErrModel, "invalid asset B %q", o.AssetB)
	}
	if o.AssetA == o.AssetB {
		return errors.Wrap(ErrInvalidAssetPair, o.AssetA)
	}
	if o.ExpectedAmountB == 0 {
		return errors.Wrap(errors.ErrAmount, "expected amount must be greater than zero")
	}
	if o.CustodyBump > 255 {
		return errors.Wrap(errors.ErrModel, "custody bump must fit in a byte")
	}
	return nil
}

// Key returns the primary key of the offer.
func (o *Offer) Key() []byte {
	return Key(o.Maker, o.OfferID)
}

// Custody returns the authority owning the vault of this offer.
func (o *Offer) Custody() swap.Condition {
	return CustodyAuthority(o.Key(), uint8(o.CustodyBump))
}

// Key returns the primary key of the offer with given ID created by given
// maker. It is the maker address followed by the big-endian encoded ID.
func Key(maker swap.Address, offerID uint64) []byte {
	key := make([]byte, len(maker)+8)
	copy(key, maker)
	binary.BigEndian.PutUint64(key[len(maker):], offerID)
	return key
}

// NewBucket returns the bucket storing offers.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("offer", &Offer{})
}
