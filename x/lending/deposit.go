package lending

import (
	"math"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

// secondsPerMonth is the length of a month used by all term computations.
const secondsPerMonth = 30 * 24 * 60 * 60

// DepositID returns the key of the deposit made by the payer into the
// pool when the pool held given number of deposits.
func DepositID(payer lendpool.Address, poolID []byte, depositCount uint64) []byte {
	return lendpool.DeriveAddress([]byte("deposit"), payer, poolID, orm.EncodeSequence(depositCount))
}

// SplitFee returns the fee withheld from given amount and the remaining
// net amount.
func SplitFee(amount, feePercent uint64) (fee, net uint64, err error) {
	if feePercent > 100 {
		return 0, 0, errors.Wrapf(ErrArithmetic, "fee %d%%", feePercent)
	}
	total, err := mul(amount, feePercent)
	if err != nil {
		return 0, 0, errors.Wrap(err, "fee")
	}
	fee = total / 100
	net, err = sub(amount, fee)
	if err != nil {
		return 0, 0, errors.Wrap(err, "net amount")
	}
	return fee, net, nil
}

// TotalInterest returns the interest earned by the net amount over the
// whole loan term, given a yearly rate in percent.
func TotalInterest(net, interestRate, loanTermMonths uint64) (uint64, error) {
	v, err := mul(net, interestRate)
	if err != nil {
		return 0, errors.Wrap(err, "total interest")
	}
	v, err = mul(v, loanTermMonths)
	if err != nil {
		return 0, errors.Wrap(err, "total interest")
	}
	return v / 1200, nil
}

// maturityDate returns the end of the loan term started at given time.
func maturityDate(start lendpool.UnixTime, loanTermMonths uint64) (lendpool.UnixTime, error) {
	secs, err := mul(loanTermMonths, secondsPerMonth)
	if err != nil {
		return 0, errors.Wrap(err, "loan term")
	}
	if start < 0 || secs > uint64(math.MaxInt64-int64(start)) {
		return 0, errors.Wrapf(ErrArithmetic, "maturity of %d months loan started at %d", loanTermMonths, start)
	}
	return start + lendpool.UnixTime(secs), nil
}

// DepositsByOwner returns all deposits made by given owner and their keys.
func DepositsByOwner(db lendpool.ReadOnlyKVStore, deposits orm.ModelBucket, owner lendpool.Address) ([]*Deposit, [][]byte, error) {
	var res []*Deposit
	keys, err := deposits.ByIndex(db, "owner", owner, &res)
	if err != nil {
		return nil, nil, errors.Wrap(err, "deposits by owner")
	}
	return res, keys, nil
}

// DepositsByPool returns all deposits made into given pool and their keys.
func DepositsByPool(db lendpool.ReadOnlyKVStore, deposits orm.ModelBucket, poolID []byte) ([]*Deposit, [][]byte, error) {
	var res []*Deposit
	keys, err := deposits.ByIndex(db, "pool", poolID, &res)
	if err != nil {
		return nil, nil, errors.Wrap(err, "deposits by pool")
	}
	return res, keys, nil
}
