package lending

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

const (
	// NameSize is the size of the pool name slot.
	NameSize = 32
	// HashSize is the size of an agreement hash.
	HashSize = 32
)

// Pool is a lending configuration created by an admin. All deposits made
// into the pool share its terms and its vault.
type Pool struct {
	Metadata              *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Admin                 lendpool.Address   `protobuf:"bytes,2,opt,name=admin,proto3"`
	Name                  []byte             `protobuf:"bytes,3,opt,name=name,proto3"`
	AgreementTemplateHash []byte             `protobuf:"bytes,4,opt,name=agreement_template_hash,json=agreementTemplateHash,proto3"`
	// InterestRate is a yearly integer percentage.
	InterestRate     uint64 `protobuf:"varint,5,opt,name=interest_rate,json=interestRate,proto3"`
	LoanTermMonths   uint64 `protobuf:"varint,6,opt,name=loan_term_months,json=loanTermMonths,proto3"`
	PaymentFrequency uint64 `protobuf:"varint,7,opt,name=payment_frequency,json=paymentFrequency,proto3"`
	Paused           bool   `protobuf:"varint,8,opt,name=paused,proto3"`
	// DepositCount is the number of deposits made. It is part of every
	// deposit key.
	DepositCount uint64           `protobuf:"varint,9,opt,name=deposit_count,json=depositCount,proto3"`
	FeePercent   uint64           `protobuf:"varint,10,opt,name=fee_percent,json=feePercent,proto3"`
	Ticker       string           `protobuf:"bytes,11,opt,name=ticker,proto3"`
	Vault        lendpool.Address `protobuf:"bytes,12,opt,name=vault,proto3"`
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "Admin", p.Admin.Validate())
	if len(p.Name) != NameSize {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "must be %d bytes", NameSize))
	}
	if len(p.AgreementTemplateHash) != HashSize {
		errs = errors.AppendField(errs, "AgreementTemplateHash", errors.Wrapf(errors.ErrInput, "must be %d bytes", HashSize))
	}
	if p.LoanTermMonths == 0 {
		errs = errors.AppendField(errs, "LoanTermMonths", ErrInvalidLoanTerm)
	}
	if p.PaymentFrequency == 0 {
		errs = errors.AppendField(errs, "PaymentFrequency", ErrInvalidPaymentFrequency)
	}
	if p.FeePercent > 100 {
		errs = errors.AppendField(errs, "FeePercent", errors.Wrap(errors.ErrInput, "must not exceed 100"))
	}
	if !coin.IsCC(p.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", p.Ticker))
	}
	errs = errors.AppendField(errs, "Vault", p.Vault.Validate())
	return errs
}

// DisplayName returns the pool name without the padding.
func (p *Pool) DisplayName() string {
	return string(bytes.TrimRight(p.Name, "\x00"))
}

func (p *Pool) Marshal() ([]byte, error) {
	return proto.Marshal((*poolData)(p))
}

func (p *Pool) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*poolData)(p))
}

type poolData Pool

func (m *poolData) Reset()         { *m = poolData{} }
func (m *poolData) String() string { return proto.CompactTextString(m) }
func (*poolData) ProtoMessage()    {}

// NewPoolBucket returns a bucket for pools, indexed by the admin.
func NewPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("pool", &Pool{},
		orm.WithIndex("admin", poolAdminIndexer, false))
}

func poolAdminIndexer(m orm.Model) ([]byte, error) {
	p, ok := m.(*Pool)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return p.Admin, nil
}

// Deposit is a single amount lent to a pool. Terms are copied from the
// pool when the deposit is created and never change. Only
// WithdrawnToDate is updated afterwards.
type Deposit struct {
	Metadata *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	PoolID   []byte             `protobuf:"bytes,2,opt,name=pool_id,json=poolId,proto3"`
	Owner    lendpool.Address   `protobuf:"bytes,3,opt,name=owner,proto3"`
	// Amount is the principal held by the vault, without the fee.
	Amount *coin.Coin `protobuf:"bytes,4,opt,name=amount,proto3"`
	// Fee is the part of the payment that was withheld.
	Fee              *coin.Coin        `protobuf:"bytes,5,opt,name=fee,proto3"`
	StartTime        lendpool.UnixTime `protobuf:"varint,6,opt,name=start_time,json=startTime,proto3"`
	FeePercent       uint32            `protobuf:"varint,7,opt,name=fee_percent,json=feePercent,proto3"`
	TotalInterest    uint64            `protobuf:"varint,8,opt,name=total_interest,json=totalInterest,proto3"`
	PaymentFrequency uint64            `protobuf:"varint,9,opt,name=payment_frequency,json=paymentFrequency,proto3"`
	LoanTermMonths   uint64            `protobuf:"varint,10,opt,name=loan_term_months,json=loanTermMonths,proto3"`
	MaturityDate     lendpool.UnixTime `protobuf:"varint,11,opt,name=maturity_date,json=maturityDate,proto3"`
	AgreementHash    []byte            `protobuf:"bytes,12,opt,name=agreement_hash,json=agreementHash,proto3"`
	WithdrawnToDate  uint64            `protobuf:"varint,13,opt,name=withdrawn_to_date,json=withdrawnToDate,proto3"`
}

var _ orm.Model = (*Deposit)(nil)

func (d *Deposit) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", d.Metadata.Validate())
	if len(d.PoolID) == 0 {
		errs = errors.AppendField(errs, "PoolID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", d.Owner.Validate())
	if coin.IsEmpty(d.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", d.Amount.Validate())
	}
	if d.Fee == nil {
		errs = errors.AppendField(errs, "Fee", errors.ErrEmpty)
	} else if d.Amount != nil && !d.Fee.SameType(*d.Amount) {
		errs = errors.AppendField(errs, "Fee", errors.Wrap(errors.ErrCurrency, "must match amount"))
	}
	errs = errors.AppendField(errs, "StartTime", d.StartTime.Validate())
	if d.FeePercent > 100 {
		errs = errors.AppendField(errs, "FeePercent", errors.Wrap(errors.ErrInput, "must not exceed 100"))
	}
	if d.LoanTermMonths == 0 {
		errs = errors.AppendField(errs, "LoanTermMonths", ErrInvalidLoanTerm)
	}
	if d.PaymentFrequency == 0 {
		errs = errors.AppendField(errs, "PaymentFrequency", ErrInvalidPaymentFrequency)
	}
	if d.MaturityDate <= d.StartTime {
		errs = errors.AppendField(errs, "MaturityDate", errors.Wrap(errors.ErrState, "must be after start time"))
	}
	if len(d.AgreementHash) != HashSize {
		errs = errors.AppendField(errs, "AgreementHash", errors.Wrapf(errors.ErrInput, "must be %d bytes", HashSize))
	}
	if d.WithdrawnToDate > d.TotalInterest {
		errs = errors.AppendField(errs, "WithdrawnToDate", errors.Wrap(errors.ErrState, "more than the total interest"))
	}
	return errs
}

func (d *Deposit) Marshal() ([]byte, error) {
	return proto.Marshal((*depositData)(d))
}

func (d *Deposit) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositData)(d))
}

type depositData Deposit

func (m *depositData) Reset()         { *m = depositData{} }
func (m *depositData) String() string { return proto.CompactTextString(m) }
func (*depositData) ProtoMessage()    {}

// NewDepositBucket returns a bucket for deposits, indexed by the owner
// and by the pool.
func NewDepositBucket() orm.ModelBucket {
	return orm.NewModelBucket("deposit", &Deposit{},
		orm.WithIndex("owner", depositOwnerIndexer, false),
		orm.WithIndex("pool", depositPoolIndexer, false))
}

func depositOwnerIndexer(m orm.Model) ([]byte, error) {
	d, ok := m.(*Deposit)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return d.Owner, nil
}

func depositPoolIndexer(m orm.Model) ([]byte, error) {
	d, ok := m.(*Deposit)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return d.PoolID, nil
}

// UserStats aggregates all deposits of a single owner. Values are kept
// per asset.
type UserStats struct {
	Metadata       *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	TotalDeposited coin.Coins         `protobuf:"bytes,2,rep,name=total_deposited,json=totalDeposited,proto3"`
	TotalWithdrawn coin.Coins         `protobuf:"bytes,3,rep,name=total_withdrawn,json=totalWithdrawn,proto3"`
	// AvailableForWithdraw is the interest unlocked but not yet
	// withdrawn, as computed on the last deposit or withdrawal.
	AvailableForWithdraw coin.Coins `protobuf:"bytes,4,rep,name=available_for_withdraw,json=availableForWithdraw,proto3"`
}

var _ orm.Model = (*UserStats)(nil)

func (s *UserStats) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "TotalDeposited", s.TotalDeposited.Validate())
	errs = errors.AppendField(errs, "TotalWithdrawn", s.TotalWithdrawn.Validate())
	errs = errors.AppendField(errs, "AvailableForWithdraw", s.AvailableForWithdraw.Validate())
	return errs
}

func (s *UserStats) Marshal() ([]byte, error) {
	return proto.Marshal((*userStatsData)(s))
}

func (s *UserStats) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userStatsData)(s))
}

type userStatsData UserStats

func (m *userStatsData) Reset()         { *m = userStatsData{} }
func (m *userStatsData) String() string { return proto.CompactTextString(m) }
func (*userStatsData) ProtoMessage()    {}

// NewUserStatsBucket returns a bucket for user stats, keyed by the owner
// address.
func NewUserStatsBucket() orm.ModelBucket {
	return orm.NewModelBucket("userstats", &UserStats{})
}

// Vault is the custody record of a pool. Funds are held by the account
// of the authority condition, which is derived from the pool ID.
type Vault struct {
	Metadata  *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	PoolID    []byte             `protobuf:"bytes,2,opt,name=pool_id,json=poolId,proto3"`
	Ticker    string             `protobuf:"bytes,3,opt,name=ticker,proto3"`
	Authority lendpool.Condition `protobuf:"bytes,4,opt,name=authority,proto3"`
}

var _ orm.Model = (*Vault)(nil)

func (v *Vault) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", v.Metadata.Validate())
	if len(v.PoolID) == 0 {
		errs = errors.AppendField(errs, "PoolID", errors.ErrEmpty)
	}
	if !coin.IsCC(v.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", v.Ticker))
	}
	errs = errors.AppendField(errs, "Authority", v.Authority.Validate())
	return errs
}

func (v *Vault) Marshal() ([]byte, error) {
	return proto.Marshal((*vaultData)(v))
}

func (v *Vault) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*vaultData)(v))
}

type vaultData Vault

func (m *vaultData) Reset()         { *m = vaultData{} }
func (m *vaultData) String() string { return proto.CompactTextString(m) }
func (*vaultData) ProtoMessage()    {}

// NewVaultBucket returns a bucket for vaults, keyed by the pool ID.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{})
}
