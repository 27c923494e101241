package utils

import (
	"context"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestRecovery(t *testing.T) {
	h := weavetest.Decorate(panicHandler{}, NewRecovery())
	db := store.MemStore()
	ctx := context.Background()

	// Panic handler panics, test the test tool.
	assert.Panics(t, func() { _, _ = panicHandler{}.Check(ctx, db, nil) })
	assert.Panics(t, func() { _, _ = panicHandler{}.Deliver(ctx, db, nil) })

	// Recovery wrapped handler returns an error.
	_, err := h.Check(ctx, db, nil)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = h.Deliver(ctx, db, nil)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler *weavetest.Handler
		wantErr *errors.Error
	}{
		"success": {
			handler: &weavetest.Handler{DeliverResult: lendpool.DeliverResult{Log: "created"}},
		},
		"failure": {
			handler: &weavetest.Handler{CheckErr: errors.ErrAmount, DeliverErr: errors.ErrAmount},
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := weavetest.Decorate(tc.handler, NewLogging())
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/log"}}
			ctx := context.Background()

			_, err := h.Check(ctx, store.MemStore(), tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(ctx, store.MemStore(), tx)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, 2, tc.handler.CallCount())
		})
	}
}

type panicHandler struct{}

func (panicHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	panic("deliver")
}
