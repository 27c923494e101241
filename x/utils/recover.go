package utils

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ lendpool.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Checker) (_ *lendpool.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Deliverer) (_ *lendpool.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
