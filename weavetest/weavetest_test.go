package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	auth := &Auth{Signer: a, Signers: []lendpool.Condition{b}}
	ctx := context.Background()

	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, c.Address()))
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	auth := &CtxAuth{Key: "auth"}
	ctx := context.Background()

	assert.Equal(t, false, auth.HasAddress(ctx, a.Address()))
	ctx = auth.SetConditions(ctx, a)
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, b.Address()))
}

func TestDecoratedHandler(t *testing.T) {
	db := store.MemStore()
	h := &Handler{DeliverErr: errors.ErrState}
	d := &Decorator{}

	_, err := Decorate(h, d).Deliver(context.Background(), db, &Tx{})
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, d.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	d.CheckErr = errors.ErrUnauthorized
	_, err = Decorate(h, d).Check(context.Background(), db, &Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 0, h.CheckCallCount())
	assert.Equal(t, 2, d.CallCount())
}

func TestSequenceID(t *testing.T) {
	a, b := SequenceID(), SequenceID()
	if string(a) == string(b) {
		t.Fatal("sequence values must be unique")
	}
}
