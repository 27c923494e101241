/*
Package std wires the lending ledger together: the transaction format,
the decorator chain, the message router and the genesis initializers on
top of an iavl backed StoreApp.
*/
package std

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/app"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store/iavl"
	"github.com/iov-one/lendpool/x"
	"github.com/iov-one/lendpool/x/cash"
	"github.com/iov-one/lendpool/x/lending"
	"github.com/iov-one/lendpool/x/sigs"
	"github.com/iov-one/lendpool/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication used by all handlers, public
// key signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// metrics and recovery. Metrics are collected only if a registerer is
// given.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics lendpool.Decorator
	if reg != nil {
		metrics = utils.NewMetrics(reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching cash and lending messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, ctrl)
	lending.RegisterRoutes(r, authFn, ctrl)
	return r
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack(reg prometheus.Registerer) lendpool.Handler {
	return Chain(reg).WithHandler(Router(Authenticator()))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() lendpool.Initializer {
	return lendpool.ChainInitializers(
		cash.Initializer{},
		&lending.Initializer{},
	)
}

// Application constructs the ledger application for given chain. An
// empty dbPath keeps all data in memory.
func Application(chainID, dbPath string, reg prometheus.Registerer, logger log.Logger) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(chainID, kv, context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	if logger != nil {
		store.WithLogger(logger)
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, Stack(reg)), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (lendpool.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
