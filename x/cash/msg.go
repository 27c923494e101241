package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
)

const maxMemoSize int = 128

// SendMsg requests a transfer of coins between two accounts. The source
// account owner must sign the transaction.
type SendMsg struct {
	Metadata    *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Source      lendpool.Address   `protobuf:"bytes,2,opt,name=source,proto3"`
	Destination lendpool.Address   `protobuf:"bytes,3,opt,name=destination,proto3"`
	Amount      *coin.Coin         `protobuf:"bytes,4,opt,name=amount,proto3"`
	Memo        string             `protobuf:"bytes,5,opt,name=memo,proto3"`
}

var _ lendpool.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if coin.IsEmpty(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgData)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgData)(m))
}

type sendMsgData SendMsg

func (m *sendMsgData) Reset()         { *m = sendMsgData{} }
func (m *sendMsgData) String() string { return proto.CompactTextString(m) }
func (*sendMsgData) ProtoMessage()    {}
