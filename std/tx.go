package std

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/x/cash"
	"github.com/iov-one/lendpool/x/lending"
	"github.com/iov-one/lendpool/x/sigs"
)

// Tx is the transaction format of the lending ledger. It carries exactly
// one message and the signatures of everyone authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	// Msg is one of the messages txData has a field for.
	Msg lendpool.Msg
}

// txData is the wire layout of Tx. Every supported message has its own
// field and at most one of them is set. Field numbers must never be
// reused.
type txData struct {
	Signatures    []*sigs.StdSignature   `protobuf:"bytes,1,rep,name=signatures,proto3"`
	SendMsg       *cash.SendMsg          `protobuf:"bytes,10,opt,name=send_msg,json=sendMsg,proto3"`
	CreatePoolMsg *lending.CreatePoolMsg `protobuf:"bytes,20,opt,name=create_pool_msg,json=createPoolMsg,proto3"`
	PausePoolMsg  *lending.PausePoolMsg  `protobuf:"bytes,21,opt,name=pause_pool_msg,json=pausePoolMsg,proto3"`
	DepositMsg    *lending.DepositMsg    `protobuf:"bytes,22,opt,name=deposit_msg,json=depositMsg,proto3"`
	WithdrawMsg   *lending.WithdrawMsg   `protobuf:"bytes,23,opt,name=withdraw_msg,json=withdrawMsg,proto3"`
}

func (m *txData) Reset()         { *m = txData{} }
func (m *txData) String() string { return proto.CompactTextString(m) }
func (*txData) ProtoMessage()    {}

// setMsg stores msg in the field of its type.
func (m *txData) setMsg(msg lendpool.Msg) error {
	switch msg := msg.(type) {
	case nil:
	case *cash.SendMsg:
		m.SendMsg = msg
	case *lending.CreatePoolMsg:
		m.CreatePoolMsg = msg
	case *lending.PausePoolMsg:
		m.PausePoolMsg = msg
	case *lending.DepositMsg:
		m.DepositMsg = msg
	case *lending.WithdrawMsg:
		m.WithdrawMsg = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %q", msg.Path())
	}
	return nil
}

// msg returns the only message set.
func (m *txData) msg() (lendpool.Msg, error) {
	var set []lendpool.Msg
	if m.SendMsg != nil {
		set = append(set, m.SendMsg)
	}
	if m.CreatePoolMsg != nil {
		set = append(set, m.CreatePoolMsg)
	}
	if m.PausePoolMsg != nil {
		set = append(set, m.PausePoolMsg)
	}
	if m.DepositMsg != nil {
		set = append(set, m.DepositMsg)
	}
	if m.WithdrawMsg != nil {
		set = append(set, m.WithdrawMsg)
	}
	switch len(set) {
	case 0:
		return nil, nil
	case 1:
		return set[0], nil
	default:
		return nil, errors.Wrap(errors.ErrInput, "more than one message")
	}
}

var _ lendpool.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (lendpool.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (lendpool.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "message is nil")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return tx.marshal(false)
}

func (tx *Tx) Marshal() ([]byte, error) {
	return tx.marshal(true)
}

func (tx *Tx) marshal(withSigs bool) ([]byte, error) {
	var data txData
	if withSigs {
		data.Signatures = tx.Signatures
	}
	if err := data.setMsg(tx.Msg); err != nil {
		return nil, err
	}
	return proto.Marshal(&data)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var data txData
	if err := proto.Unmarshal(raw, &data); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	msg, err := data.msg()
	if err != nil {
		return err
	}
	tx.Signatures = data.Signatures
	tx.Msg = msg
	return nil
}
