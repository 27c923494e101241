package utils

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ lendpool.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Checker) (*lendpool.CheckResult, error) {
	cache, ok := cacheWrap(db, s.onCheck)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Deliverer) (*lendpool.DeliverResult, error) {
	cache, ok := cacheWrap(db, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheWrap(db lendpool.KVStore, enabled bool) (lendpool.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := db.(lendpool.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// finish drops all cached changes if the call failed, otherwise writes
// them to the parent store.
func finish(cache lendpool.KVCacheWrap, callErr error) error {
	if callErr != nil {
		cache.Discard()
		return callErr
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
