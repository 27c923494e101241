package lending

import (
	"time"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

// AvailableForWithdraw returns the interest of all owner deposits that is
// unlocked at given time and not yet withdrawn.
func AvailableForWithdraw(db lendpool.ReadOnlyKVStore, deposits orm.ModelBucket, owner lendpool.Address, now time.Time) (coin.Coins, error) {
	all, _, err := DepositsByOwner(db, deposits, owner)
	if err != nil {
		return nil, err
	}
	var total coin.Coins
	for _, d := range all {
		remaining, err := remainingInterest(d, now)
		if err != nil {
			return nil, err
		}
		if total, err = addCoin(total, coin.NewCoin(remaining, d.Amount.Ticker)); err != nil {
			return nil, errors.Wrap(err, "available for withdraw")
		}
	}
	return total, nil
}

// statsChange describes how a single operation affects the owner stats.
type statsChange struct {
	deposited coin.Coin
	withdrawn coin.Coin
}

// updateStats applies the change to the stats of the owner, creating them
// if needed, and recomputes the available interest.
func updateStats(
	db lendpool.KVStore,
	stats, deposits orm.ModelBucket,
	owner lendpool.Address,
	now time.Time,
	change statsChange,
) (*UserStats, error) {
	var s UserStats
	switch err := stats.One(db, owner, &s); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		s = UserStats{Metadata: &lendpool.Metadata{Schema: 1}}
	default:
		return nil, errors.Wrap(err, "load stats")
	}

	var err error
	if s.TotalDeposited, err = addCoin(s.TotalDeposited, change.deposited); err != nil {
		return nil, errors.Wrap(err, "total deposited")
	}
	if s.TotalWithdrawn, err = addCoin(s.TotalWithdrawn, change.withdrawn); err != nil {
		return nil, errors.Wrap(err, "total withdrawn")
	}
	if s.AvailableForWithdraw, err = AvailableForWithdraw(db, deposits, owner, now); err != nil {
		return nil, err
	}
	if _, err := stats.Put(db, owner, &s); err != nil {
		return nil, errors.Wrap(err, "store stats")
	}
	return &s, nil
}
