package lending

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
)

const maxNameSize = 128

var (
	_ lendpool.Msg = (*CreatePoolMsg)(nil)
	_ lendpool.Msg = (*PausePoolMsg)(nil)
	_ lendpool.Msg = (*DepositMsg)(nil)
	_ lendpool.Msg = (*WithdrawMsg)(nil)
)

// CreatePoolMsg creates a pool together with its vault. The fee is not
// part of the message, it is taken from the configuration.
type CreatePoolMsg struct {
	Metadata              *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Admin                 lendpool.Address   `protobuf:"bytes,2,opt,name=admin,proto3"`
	Name                  string             `protobuf:"bytes,3,opt,name=name,proto3"`
	InterestRate          uint64             `protobuf:"varint,4,opt,name=interest_rate,json=interestRate,proto3"`
	LoanTermMonths        uint64             `protobuf:"varint,5,opt,name=loan_term_months,json=loanTermMonths,proto3"`
	PaymentFrequency      uint64             `protobuf:"varint,6,opt,name=payment_frequency,json=paymentFrequency,proto3"`
	AgreementTemplateHash []byte             `protobuf:"bytes,7,opt,name=agreement_template_hash,json=agreementTemplateHash,proto3"`
	Ticker                string             `protobuf:"bytes,8,opt,name=ticker,proto3"`
}

func (CreatePoolMsg) Path() string {
	return "lending/create_pool"
}

func (m *CreatePoolMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	switch n := len(m.Name); {
	case n == 0:
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	case n > maxNameSize:
		errs = errors.AppendField(errs, "Name", errors.Wrap(errors.ErrInput, "too long"))
	}
	if m.LoanTermMonths == 0 {
		errs = errors.AppendField(errs, "LoanTermMonths", errors.Wrap(ErrInvalidLoanTerm, "must be positive"))
	}
	if m.PaymentFrequency == 0 {
		errs = errors.AppendField(errs, "PaymentFrequency", errors.Wrap(ErrInvalidPaymentFrequency, "must be positive"))
	}
	if len(m.AgreementTemplateHash) != HashSize {
		errs = errors.AppendField(errs, "AgreementTemplateHash", errors.Wrapf(errors.ErrInput, "must be %d bytes", HashSize))
	}
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(ErrInvalidTokenMint, "invalid ticker %q", m.Ticker))
	}
	return errs
}

func (m *CreatePoolMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createPoolMsgData)(m))
}

func (m *CreatePoolMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createPoolMsgData)(m))
}

type createPoolMsgData CreatePoolMsg

func (m *createPoolMsgData) Reset()         { *m = createPoolMsgData{} }
func (m *createPoolMsgData) String() string { return proto.CompactTextString(m) }
func (*createPoolMsgData) ProtoMessage()    {}

// PausePoolMsg stops or resumes deposits and withdrawals of a pool.
type PausePoolMsg struct {
	Metadata *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	PoolID   []byte             `protobuf:"bytes,2,opt,name=pool_id,json=poolId,proto3"`
	Paused   bool               `protobuf:"varint,3,opt,name=paused,proto3"`
}

func (PausePoolMsg) Path() string {
	return "lending/pause_pool"
}

func (m *PausePoolMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.PoolID) == 0 {
		errs = errors.AppendField(errs, "PoolID", errors.ErrEmpty)
	}
	return errs
}

func (m *PausePoolMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*pausePoolMsgData)(m))
}

func (m *PausePoolMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*pausePoolMsgData)(m))
}

type pausePoolMsgData PausePoolMsg

func (m *pausePoolMsgData) Reset()         { *m = pausePoolMsgData{} }
func (m *pausePoolMsgData) String() string { return proto.CompactTextString(m) }
func (*pausePoolMsgData) ProtoMessage()    {}

// DepositMsg lends the amount to a pool. The agreement hash must match
// the pool template hash.
type DepositMsg struct {
	Metadata      *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	PoolID        []byte             `protobuf:"bytes,2,opt,name=pool_id,json=poolId,proto3"`
	Depositor     lendpool.Address   `protobuf:"bytes,3,opt,name=depositor,proto3"`
	Amount        *coin.Coin         `protobuf:"bytes,4,opt,name=amount,proto3"`
	AgreementHash []byte             `protobuf:"bytes,5,opt,name=agreement_hash,json=agreementHash,proto3"`
}

func (DepositMsg) Path() string {
	return "lending/deposit"
}

func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.PoolID) == 0 {
		errs = errors.AppendField(errs, "PoolID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Depositor", m.Depositor.Validate())
	if coin.IsEmpty(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	if len(m.AgreementHash) != HashSize {
		errs = errors.AppendField(errs, "AgreementHash", errors.Wrapf(ErrInvalidAgreement, "must be %d bytes", HashSize))
	}
	return errs
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsgData)(m))
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsgData)(m))
}

type depositMsgData DepositMsg

func (m *depositMsgData) Reset()         { *m = depositMsgData{} }
func (m *depositMsgData) String() string { return proto.CompactTextString(m) }
func (*depositMsgData) ProtoMessage()    {}

// WithdrawMsg pays out unlocked interest of a deposit to its owner.
type WithdrawMsg struct {
	Metadata  *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	DepositID []byte             `protobuf:"bytes,2,opt,name=deposit_id,json=depositId,proto3"`
	Amount    *coin.Coin         `protobuf:"bytes,3,opt,name=amount,proto3"`
}

func (WithdrawMsg) Path() string {
	return "lending/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.DepositID) == 0 {
		errs = errors.AppendField(errs, "DepositID", errors.ErrEmpty)
	}
	if coin.IsEmpty(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	return errs
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawMsgData)(m))
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawMsgData)(m))
}

type withdrawMsgData WithdrawMsg

func (m *withdrawMsgData) Reset()         { *m = withdrawMsgData{} }
func (m *withdrawMsgData) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgData) ProtoMessage()    {}
