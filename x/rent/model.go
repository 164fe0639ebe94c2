package rent

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/x/token"
)

const packageName = "rent"

// Configuration of the deposits charged for new objects.
type Configuration struct {
	// Asset is the ticker deposits are paid with.
	Asset string `protobuf:"bytes,1,opt,name=asset,proto3" json:"asset"`
	// Amount charged for every new object. Zero disables deposits.
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

func (c *Configuration) Validate() error {
	if c.Amount == 0 {
		return nil
	}
	if !token.IsTicker(c.Asset) {
		return errors.Wrapf(errors.ErrInput, "invalid deposit asset %q", c.Asset)
	}
	return nil
}

// Deposit records the amount paid for a single object.
type Deposit struct {
	Payer  swap.Address `protobuf:"bytes,1,opt,name=payer,proto3" json:"payer"`
	Asset  string       `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset"`
	Amount uint64       `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

func (d *Deposit) Reset()         { *d = Deposit{} }
func (d *Deposit) String() string { return proto.CompactTextString(d) }
func (*Deposit) ProtoMessage()    {}

var _ orm.Model = (*Deposit)(nil)

func (d *Deposit) Validate() error {
	if err := d.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if !token.IsTicker(d.Asset) {
		return errors.Wrapf(errors.ErrModel, "invalid asset %q", d.Asset)
	}
	if d.Amount == 0 {
		return errors.Wrap(errors.ErrModel, "empty deposit")
	}
	return nil
}

// NewDepositBucket returns the bucket storing deposits keyed by the
// reference of the object they pay for.
func NewDepositBucket() orm.ModelBucket {
	return orm.NewModelBucket("deposit", &Deposit{})
}

// PoolCondition is the authority holding all deposits.
func PoolCondition() swap.Condition {
	return swap.NewCondition("rent", "pool", []byte("deposits"))
}

// Ref builds the reference of an object of given kind, under which its
// deposit is stored.
func Ref(kind string, key []byte) []byte {
	ref := make([]byte, 0, len(kind)+1+len(key))
	ref = append(ref, kind...)
	ref = append(ref, ':')
	return append(ref, key...)
}
