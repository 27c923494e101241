package utils

import (
	"time"

	"github.com/iov-one/lendpool"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes a log entry for every processed transaction. Failures
// are logged as errors, delivered transactions as info and checked ones as
// debug.
type Logging struct{}

var _ lendpool.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Checker) (*lendpool.CheckResult, error) {
	entry := startEntry(ctx, tx)
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		entry.fail(err)
	} else {
		entry.logger().Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Deliverer) (*lendpool.DeliverResult, error) {
	entry := startEntry(ctx, tx)
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		entry.fail(err)
	} else {
		entry.logger().Info(res.Log)
	}
	return res, err
}

type logEntry struct {
	ctx   lendpool.Context
	path  string
	start time.Time
}

func startEntry(ctx lendpool.Context, tx lendpool.Tx) logEntry {
	return logEntry{ctx: ctx, path: lendpool.GetPath(tx), start: time.Now()}
}

// logger returns the context logger with the path and the time elapsed in
// microseconds attached. An entry is written even for an empty message.
func (e logEntry) logger() log.Logger {
	return lendpool.GetLogger(e.ctx).With(
		"path", e.path,
		"duration", time.Since(e.start)/time.Microsecond,
	)
}

func (e logEntry) fail(err error) {
	e.logger().Error("", "err", err)
}
