package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
)

// Tx is the transaction accepted by the swap node. Exactly one message
// field must be set.
type Tx struct {
	Signatures       []*sigs.StdSignature    `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CreateOfferMsg   *offer.CreateOfferMsg   `protobuf:"bytes,2,opt,name=create_offer_msg,proto3" json:"create_offer_msg,omitempty"`
	FulfillOfferMsg  *offer.FulfillOfferMsg  `protobuf:"bytes,3,opt,name=fulfill_offer_msg,proto3" json:"fulfill_offer_msg,omitempty"`
	CancelOfferMsg   *offer.CancelOfferMsg   `protobuf:"bytes,4,opt,name=cancel_offer_msg,proto3" json:"cancel_offer_msg,omitempty"`
	RegisterAssetMsg *token.RegisterAssetMsg `protobuf:"bytes,5,opt,name=register_asset_msg,proto3" json:"register_asset_msg,omitempty"`
	IssueMsg         *token.IssueMsg         `protobuf:"bytes,6,opt,name=issue_msg,proto3" json:"issue_msg,omitempty"`
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

// make sure tx fulfills all interfaces
var _ swap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (swap.Tx, error) {
	tx := new(Tx)
	if err := swap.Unmarshal(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg swap.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *offer.CreateOfferMsg:
		tx.CreateOfferMsg = m
	case *offer.FulfillOfferMsg:
		tx.FulfillOfferMsg = m
	case *offer.CancelOfferMsg:
		tx.CancelOfferMsg = m
	case *token.RegisterAssetMsg:
		tx.RegisterAssetMsg = m
	case *token.IssueMsg:
		tx.IssueMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (swap.Msg, error) {
	var msgs []swap.Msg
	if tx.CreateOfferMsg != nil {
		msgs = append(msgs, tx.CreateOfferMsg)
	}
	if tx.FulfillOfferMsg != nil {
		msgs = append(msgs, tx.FulfillOfferMsg)
	}
	if tx.CancelOfferMsg != nil {
		msgs = append(msgs, tx.CancelOfferMsg)
	}
	if tx.RegisterAssetMsg != nil {
		msgs = append(msgs, tx.RegisterAssetMsg)
	}
	if tx.IssueMsg != nil {
		msgs = append(msgs, tx.IssueMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrEmpty, "transaction message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction carries %d messages", len(msgs))
	}
}

// GetSignatures returns the signatures of signers who signed the
// transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := swap.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}
