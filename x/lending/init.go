package lending

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/gconf"
)

// Initializer stores the lending configuration declared in the genesis.
type Initializer struct{}

var _ lendpool.Initializer = (*Initializer)(nil)

// FromGenesis saves the configuration found in the "conf" section. Without
// it the default configuration is used.
func (*Initializer) FromGenesis(opts lendpool.Options, db lendpool.KVStore) error {
	conf := Configuration{
		Metadata: &lendpool.Metadata{Schema: 1},
	}
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil:
		return nil
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}
}
