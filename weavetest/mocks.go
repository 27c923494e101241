/*
Package weavetest provides test doubles for the lendpool interfaces:
handlers and decorators that count their calls, transactions wrapping any
message and authenticators granting chosen conditions.
*/
package weavetest

import "github.com/iov-one/lendpool"

// calls counts Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a mock lendpool.Handler returning the configured results.
type Handler struct {
	calls

	CheckResult lendpool.CheckResult
	CheckErr    error

	DeliverResult lendpool.DeliverResult
	DeliverErr    error

	// Write is stored in the database by every Deliver call, before the
	// result is returned. Use it to test rollbacks.
	Write [][2][]byte
}

var _ lendpool.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	h.check++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	h.deliver++
	for _, kv := range h.Write {
		if err := db.Set(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

// Decorator is a mock lendpool.Decorator. When an error is configured it
// is returned without calling the next handler.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ lendpool.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Checker) (*lendpool.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Deliverer) (*lendpool.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that calls d before h.
func Decorate(h lendpool.Handler, d lendpool.Decorator) lendpool.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h lendpool.Handler
	d lendpool.Decorator
}

func (x decorated) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}
