package lending

import (
	"bytes"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
	"github.com/iov-one/lendpool/x"
	"github.com/iov-one/lendpool/x/cash"
)

// RegisterRoutes registers handlers for all lending messages.
func RegisterRoutes(r lendpool.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	pools := NewPoolBucket()
	vaults := NewVaultBucket()
	deposits := NewDepositBucket()
	stats := NewUserStatsBucket()

	r.Handle(&CreatePoolMsg{}, &createPoolHandler{
		auth:     auth,
		pools:    pools,
		vaults:   vaults,
		cashctrl: cashctrl,
	})
	r.Handle(&PausePoolMsg{}, &pausePoolHandler{
		auth:  auth,
		pools: pools,
	})
	r.Handle(&DepositMsg{}, &depositHandler{
		auth:     auth,
		pools:    pools,
		vaults:   vaults,
		deposits: deposits,
		stats:    stats,
		cashctrl: cashctrl,
	})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{
		auth:     auth,
		pools:    pools,
		vaults:   vaults,
		deposits: deposits,
		stats:    stats,
		cashctrl: cashctrl,
	})
}

type createPoolHandler struct {
	auth     x.Authenticator
	pools    orm.ModelBucket
	vaults   orm.ModelBucket
	cashctrl cash.Controller
}

func (h *createPoolHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, nil
}

func (h *createPoolHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, pool, funding, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	poolID := PoolID(pool.Ticker, pool.AgreementTemplateHash)

	if funding.IsPositive() {
		if err := h.cashctrl.MoveCoins(db, msg.Admin, pool.Vault, funding); err != nil {
			return nil, errors.Wrap(err, "fund vault")
		}
	}
	vault := Vault{
		Metadata:  &lendpool.Metadata{Schema: 1},
		PoolID:    poolID,
		Ticker:    pool.Ticker,
		Authority: VaultCondition(poolID),
	}
	if _, err := h.vaults.Put(db, poolID, &vault); err != nil {
		return nil, errors.Wrap(err, "store vault")
	}
	if _, err := h.pools.Put(db, poolID, pool); err != nil {
		return nil, errors.Wrap(err, "store pool")
	}

	lendpool.GetLogger(ctx).Info("pool created",
		"pool", lendpool.Address(poolID),
		"name", pool.DisplayName(),
		"ticker", pool.Ticker,
		"vault_funding", funding.String())
	return &lendpool.DeliverResult{Data: poolID}, nil
}

// validate returns the pool to be created and the amount the admin pays
// into the vault.
func (h *createPoolHandler) validate(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*CreatePoolMsg, *Pool, coin.Coin, error) {
	var msg CreatePoolMsg
	if err := lendpool.LoadMsg(tx, &msg); err != nil {
		return nil, nil, coin.Coin{}, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, nil, coin.Coin{}, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	feePercent, err := conf.FeePercent(msg.Ticker)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}

	poolID := PoolID(msg.Ticker, msg.AgreementTemplateHash)
	switch err := h.pools.Has(db, poolID); {
	case err == nil:
		return nil, nil, coin.Coin{}, errors.Wrapf(errors.ErrDuplicate, "pool %s", lendpool.Address(poolID))
	case !errors.ErrNotFound.Is(err):
		return nil, nil, coin.Coin{}, errors.Wrap(err, "pool")
	}
	if err := h.vaults.Has(db, poolID); err == nil {
		return nil, nil, coin.Coin{}, errors.Wrap(ErrInvalidAccountConfig, "vault already exists")
	}

	vault := VaultCondition(poolID).Address()
	funding, err := vaultFunding(db, h.cashctrl, vault, msg.Ticker, conf.VaultReserve)
	if err != nil {
		return nil, nil, coin.Coin{}, err
	}
	if funding.IsPositive() {
		balance, err := h.cashctrl.Balance(db, msg.Admin)
		if err != nil {
			return nil, nil, coin.Coin{}, errors.Wrap(err, "admin balance")
		}
		if !balance.Contains(funding) {
			return nil, nil, coin.Coin{}, errors.Wrapf(ErrInsufficientFunds, "vault reserve of %s", funding)
		}
	}

	pool := &Pool{
		Metadata:              &lendpool.Metadata{Schema: 1},
		Admin:                 msg.Admin,
		Name:                  PoolName(msg.Name),
		AgreementTemplateHash: msg.AgreementTemplateHash,
		InterestRate:          msg.InterestRate,
		LoanTermMonths:        msg.LoanTermMonths,
		PaymentFrequency:      msg.PaymentFrequency,
		Paused:                false,
		DepositCount:          0,
		FeePercent:            uint64(feePercent),
		Ticker:                msg.Ticker,
		Vault:                 vault,
	}
	return &msg, pool, funding, nil
}

type pausePoolHandler struct {
	auth  x.Authenticator
	pools orm.ModelBucket
}

func (h *pausePoolHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, nil
}

func (h *pausePoolHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, pool, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	pool.Paused = msg.Paused
	if _, err := h.pools.Put(db, msg.PoolID, pool); err != nil {
		return nil, errors.Wrap(err, "store pool")
	}
	lendpool.GetLogger(ctx).Info("pool pause changed",
		"pool", lendpool.Address(msg.PoolID),
		"paused", msg.Paused)
	return &lendpool.DeliverResult{}, nil
}

func (h *pausePoolHandler) validate(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*PausePoolMsg, *Pool, error) {
	var msg PausePoolMsg
	if err := lendpool.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	pool, err := loadPool(db, h.pools, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, pool.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "pool admin signature missing")
	}
	return &msg, pool, nil
}

type depositHandler struct {
	auth     x.Authenticator
	pools    orm.ModelBucket
	vaults   orm.ModelBucket
	deposits orm.ModelBucket
	stats    orm.ModelBucket
	cashctrl cash.Controller
}

func (h *depositHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, nil
}

func (h *depositHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, pool, deposit, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.cashctrl.MoveCoins(db, msg.Depositor, pool.Vault, *deposit.Amount); err != nil {
		return nil, errors.Wrap(err, "lock funds")
	}

	// The counter value before the increment is part of the key.
	key := DepositID(msg.Depositor, msg.PoolID, pool.DepositCount)
	if _, err := h.deposits.Put(db, key, deposit); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}

	if pool.DepositCount, err = add(pool.DepositCount, 1); err != nil {
		return nil, errors.Wrap(err, "deposit count")
	}
	if _, err := h.pools.Put(db, msg.PoolID, pool); err != nil {
		return nil, errors.Wrap(err, "store pool")
	}

	change := statsChange{deposited: *msg.Amount}
	if _, err := updateStats(db, h.stats, h.deposits, msg.Depositor, deposit.StartTime.Time(), change); err != nil {
		return nil, errors.Wrap(err, "user stats")
	}

	lendpool.GetLogger(ctx).Info("deposit created",
		"deposit", lendpool.Address(key),
		"pool", lendpool.Address(msg.PoolID),
		"amount", deposit.Amount.String(),
		"fee", deposit.Fee.String())
	return &lendpool.DeliverResult{Data: key}, nil
}

// validate returns the pool the deposit is made into and the deposit
// record to be stored.
func (h *depositHandler) validate(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*DepositMsg, *Pool, *Deposit, error) {
	var msg DepositMsg
	if err := lendpool.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Depositor) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}
	pool, err := loadPool(db, h.pools, msg.PoolID)
	if err != nil {
		return nil, nil, nil, err
	}
	if pool.Paused {
		return nil, nil, nil, errors.Wrap(ErrPoolPaused, "deposits are disabled")
	}
	if !bytes.Equal(msg.AgreementHash, pool.AgreementTemplateHash) {
		return nil, nil, nil, errors.Wrap(ErrInvalidAgreement, "agreement hash does not match the pool template")
	}
	if msg.Amount.Ticker != pool.Ticker {
		return nil, nil, nil, errors.Wrapf(ErrInvalidTokenMint, "pool accepts %s only", pool.Ticker)
	}
	if _, err := loadVault(db, h.vaults, pool, msg.PoolID); err != nil {
		return nil, nil, nil, err
	}
	key := DepositID(msg.Depositor, msg.PoolID, pool.DepositCount)
	if err := h.deposits.Has(db, key); err == nil {
		return nil, nil, nil, errors.Wrapf(errors.ErrDuplicate, "deposit %s", lendpool.Address(key))
	}

	fee, net, err := SplitFee(msg.Amount.Amount, pool.FeePercent)
	if err != nil {
		return nil, nil, nil, err
	}
	if net == 0 {
		return nil, nil, nil, errors.Wrap(errors.ErrAmount, "nothing left after the fee")
	}
	balance, err := h.cashctrl.Balance(db, msg.Depositor)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "depositor balance")
	}
	principal := coin.NewCoin(net, pool.Ticker)
	if !balance.Contains(principal) {
		return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "depositor holds less than %s", principal)
	}

	now, err := lendpool.BlockTime(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "block time")
	}
	start := lendpool.AsUnixTime(now)
	maturity, err := maturityDate(start, pool.LoanTermMonths)
	if err != nil {
		return nil, nil, nil, err
	}
	interest, err := TotalInterest(net, pool.InterestRate, pool.LoanTermMonths)
	if err != nil {
		return nil, nil, nil, err
	}

	deposit := &Deposit{
		Metadata:         &lendpool.Metadata{Schema: 1},
		PoolID:           msg.PoolID,
		Owner:            msg.Depositor,
		Amount:           &principal,
		Fee:              coin.NewCoinp(fee, pool.Ticker),
		StartTime:        start,
		FeePercent:       uint32(pool.FeePercent),
		TotalInterest:    interest,
		PaymentFrequency: pool.PaymentFrequency,
		LoanTermMonths:   pool.LoanTermMonths,
		MaturityDate:     maturity,
		AgreementHash:    msg.AgreementHash,
		WithdrawnToDate:  0,
	}
	return &msg, pool, deposit, nil
}

type withdrawHandler struct {
	auth     x.Authenticator
	pools    orm.ModelBucket
	vaults   orm.ModelBucket
	deposits orm.ModelBucket
	stats    orm.ModelBucket
	cashctrl cash.Controller
}

func (h *withdrawHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, nil
}

func (h *withdrawHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	msg, pool, deposit, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := lendpool.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	if err := h.cashctrl.MoveCoins(db, pool.Vault, deposit.Owner, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "pay out interest")
	}
	if deposit.WithdrawnToDate, err = add(deposit.WithdrawnToDate, msg.Amount.Amount); err != nil {
		return nil, errors.Wrap(err, "withdrawn to date")
	}
	if _, err := h.deposits.Put(db, msg.DepositID, deposit); err != nil {
		return nil, errors.Wrap(err, "store deposit")
	}

	change := statsChange{withdrawn: *msg.Amount}
	if _, err := updateStats(db, h.stats, h.deposits, deposit.Owner, now, change); err != nil {
		return nil, errors.Wrap(err, "user stats")
	}

	lendpool.GetLogger(ctx).Info("interest withdrawn",
		"deposit", lendpool.Address(msg.DepositID),
		"amount", msg.Amount.String(),
		"withdrawn_to_date", deposit.WithdrawnToDate)
	return &lendpool.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*WithdrawMsg, *Pool, *Deposit, error) {
	var msg WithdrawMsg
	if err := lendpool.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	var deposit Deposit
	if err := h.deposits.One(db, msg.DepositID, &deposit); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load deposit")
	}
	if !h.auth.HasAddress(ctx, deposit.Owner) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "deposit owner signature missing")
	}
	pool, err := loadPool(db, h.pools, deposit.PoolID)
	if err != nil {
		return nil, nil, nil, err
	}
	if pool.Paused {
		return nil, nil, nil, errors.Wrap(ErrPoolPaused, "withdrawals are disabled")
	}
	if msg.Amount.Ticker != deposit.Amount.Ticker {
		return nil, nil, nil, errors.Wrapf(ErrInvalidTokenMint, "deposit pays out %s only", deposit.Amount.Ticker)
	}

	now, err := lendpool.BlockTime(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "block time")
	}
	remaining, err := remainingInterest(&deposit, now)
	if err != nil {
		return nil, nil, nil, err
	}
	if msg.Amount.Amount > remaining {
		return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "only %d unlocked", remaining)
	}

	if _, err := loadVault(db, h.vaults, pool, deposit.PoolID); err != nil {
		return nil, nil, nil, err
	}
	balance, err := h.cashctrl.Balance(db, pool.Vault)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "vault balance")
	}
	if !balance.Contains(*msg.Amount) {
		return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "vault holds less than %s", msg.Amount)
	}
	return &msg, pool, &deposit, nil
}
