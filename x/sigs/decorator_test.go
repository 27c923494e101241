package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/crypto"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestDecorator(t *testing.T) {
	db := store.MemStore()
	ctx := lendpool.WithChainID(context.Background(), chainID)
	priv := crypto.GenPrivKeyEd25519()

	h := &signersHandler{}
	d := NewDecorator()

	tx := newSignedTx("deposit")
	sig, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}

	_, err = d.Check(ctx, db, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(h.signers))
	if !(Authenticate{}).HasAddress(withSigners(ctx, h.signers), priv.PublicKey().Address()) {
		t.Fatal("signer address not authenticated")
	}

	// the sequence was consumed by the check
	_, err = d.Deliver(ctx, db, tx, h)
	assert.IsErr(t, ErrInvalidSequence, err)

	sig, err = SignTx(priv, tx, chainID, 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}
	_, err = d.Deliver(ctx, db, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(h.signers))
}

func TestDecoratorMissingSignatures(t *testing.T) {
	db := store.MemStore()
	ctx := lendpool.WithChainID(context.Background(), chainID)
	h := &signersHandler{}

	unsigned := newSignedTx("deposit")
	_, err := NewDecorator().Check(ctx, db, unsigned, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	plain := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/plain"}}
	_, err = NewDecorator().Deliver(ctx, db, plain, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, db, unsigned, h)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(h.signers))
}
