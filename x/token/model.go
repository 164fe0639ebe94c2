package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/holiman/uint256"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
)

// MaxDecimals is the greatest precision an asset can declare.
const MaxDecimals = 18

var (
	// IsTicker checks if given string is a valid asset ticker.
	IsTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`).MatchString

	isAssetName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
)

// Asset describes a registered asset.
type Asset struct {
	Ticker   string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Name     string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals"`
}

func (a *Asset) Reset()         { *a = Asset{} }
func (a *Asset) String() string { return proto.CompactTextString(a) }
func (*Asset) ProtoMessage()    {}

var _ orm.Model = (*Asset)(nil)

func (a *Asset) Validate() error {
	if !IsTicker(a.Ticker) {
		return errors.Wrapf(errors.ErrModel, "invalid ticker %q", a.Ticker)
	}
	if !isAssetName(a.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid asset name %q", a.Name)
	}
	if a.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrModel, "decimals must not be greater than %d", MaxDecimals)
	}
	return nil
}

// NewAssetBucket returns the bucket storing assets by ticker.
func NewAssetBucket() orm.ModelBucket {
	return orm.NewModelBucket("asset", &Asset{})
}

// Account holds the balance of a single asset owned by a single address.
type Account struct {
	Owner swap.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Asset string       `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset"`
	// Balance is a big-endian encoded unsigned 256 bit integer.
	Balance []byte `protobuf:"bytes,3,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (a *Account) Reset()         { *a = Account{} }
func (a *Account) String() string { return proto.CompactTextString(a) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !IsTicker(a.Asset) {
		return errors.Wrapf(errors.ErrModel, "invalid asset %q", a.Asset)
	}
	if len(a.Balance) > 32 {
		return errors.Wrap(errors.ErrModel, "balance exceeds 256 bits")
	}
	return nil
}

// Amount returns the balance of the account.
func (a *Account) Amount() *uint256.Int {
	return new(uint256.Int).SetBytes(a.Balance)
}

// SetAmount replaces the balance of the account.
func (a *Account) SetAmount(v *uint256.Int) {
	a.Balance = v.Bytes()
}

// AccountKey returns the primary key of the account holding given asset for
// given owner.
func AccountKey(owner swap.Address, ticker string) []byte {
	key := make([]byte, 0, len(owner)+len(ticker))
	key = append(key, owner...)
	return append(key, ticker...)
}

// NewAccountBucket returns the bucket storing holding accounts.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("account", &Account{})
}
