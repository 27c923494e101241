package lending

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
	"github.com/iov-one/lendpool/x/cash"
)

// PoolID returns the key of the pool lending given asset under given
// agreement template.
func PoolID(ticker string, templateHash []byte) []byte {
	return lendpool.DeriveAddress([]byte("pool"), []byte(ticker), templateHash)
}

// VaultCondition returns the condition that controls the vault account of
// given pool. No private key exists for it, only this package can move
// the vault funds.
func VaultCondition(poolID []byte) lendpool.Condition {
	return lendpool.NewCondition("lending", "vault", poolID)
}

// PoolName returns the name as stored in the pool. It is cut to NameSize
// bytes without splitting a character and padded with zeros.
func PoolName(name string) []byte {
	cut := len(name)
	if cut > NameSize {
		for i := range name {
			if i > NameSize {
				break
			}
			cut = i
		}
	}
	out := make([]byte, NameSize)
	copy(out, name[:cut])
	return out
}

// vaultFunding returns the amount the admin must pay so that the vault
// account holds the reserve. An account that was never used needs the
// whole reserve, an account that already received funds only the
// missing part.
func vaultFunding(db lendpool.ReadOnlyKVStore, ctrl cash.Balancer, vault lendpool.Address, ticker string, reserve uint64) (coin.Coin, error) {
	balance, err := ctrl.Balance(db, vault)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "vault balance")
	}
	held := balance.Get(ticker).Amount
	if held >= reserve {
		return coin.NewCoin(0, ticker), nil
	}
	return coin.NewCoin(reserve-held, ticker), nil
}

// loadVault returns the vault of given pool after ensuring that it is
// controlled by the condition derived from the pool ID.
func loadVault(db lendpool.ReadOnlyKVStore, vaults orm.ModelBucket, pool *Pool, poolID []byte) (*Vault, error) {
	var v Vault
	switch err := vaults.One(db, poolID, &v); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrInvalidAccountConfig, "pool has no vault")
	default:
		return nil, errors.Wrap(err, "load vault")
	}
	cond := VaultCondition(poolID)
	if !v.Authority.Equals(cond) {
		return nil, errors.Wrapf(ErrInvalidAccountConfig, "vault authority %s", v.Authority)
	}
	if !cond.Address().Equals(pool.Vault) {
		return nil, errors.Wrapf(ErrInvalidAccountConfig, "pool vault %s", pool.Vault)
	}
	if v.Ticker != pool.Ticker {
		return nil, errors.Wrapf(ErrInvalidAccountConfig, "vault holds %s", v.Ticker)
	}
	return &v, nil
}

// loadPool returns the pool stored under given key.
func loadPool(db lendpool.ReadOnlyKVStore, pools orm.ModelBucket, poolID []byte) (*Pool, error) {
	var p Pool
	if err := pools.One(db, poolID, &p); err != nil {
		return nil, errors.Wrap(err, "load pool")
	}
	return &p, nil
}
