package cash

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Coins can
// be written in the human readable "<amount> <ticker>" form.
type GenesisAccount struct {
	Address lendpool.Address `json:"address"`
	Coins   []*coin.Coin     `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ lendpool.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts lendpool.Options, db lendpool.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d address", i)
		}
		wallet, err := WalletWith(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if _, err := bucket.Put(db, acct.Address, wallet); err != nil {
			return errors.Wrapf(err, "save account %d", i)
		}
	}
	return nil
}
