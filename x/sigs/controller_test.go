package sigs

import (
	"bytes"
	"testing"

	"github.com/iov-one/lendpool/crypto"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest/assert"
)

const chainID = "lend-testnet"

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), chainID, 1)
	assert.Nil(t, err)
	assert.Equal(t, 64, len(a))

	b, err := BuildSignBytes([]byte("payload"), chainID, 2)
	assert.Nil(t, err)
	if bytes.Equal(a, b) {
		t.Fatal("sequence must change the sign bytes")
	}
	c, err := BuildSignBytes([]byte("payload"), "other-chain", 1)
	assert.Nil(t, err)
	if bytes.Equal(a, c) {
		t.Fatal("chain id must change the sign bytes")
	}

	_, err = BuildSignBytes([]byte("payload"), chainID, -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("payload"), "bad", 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifyTxSignatures(t *testing.T) {
	db := store.MemStore()
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()

	tx := newSignedTx("create pool")
	sa, err := SignTx(alice, tx, chainID, 0)
	assert.Nil(t, err)
	sb, err := SignTx(bob, tx, chainID, 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sa, sb}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(signers))
	if !signers[0].Equals(alice.PublicKey().Condition()) {
		t.Fatalf("unexpected first signer %s", signers[0])
	}

	seq, err := NextSequence(db, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// replaying the same signatures must fail
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// signature for another chain
	sa, err = SignTx(alice, tx, "other-chain", 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sa}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// tampered payload
	sa, err = SignTx(alice, tx, chainID, 1)
	assert.Nil(t, err)
	tampered := newSignedTx("create another pool")
	tampered.sigs = []*StdSignature{sa}
	_, err = VerifyTxSignatures(db, tampered, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// the failed attempts did not bump the sequence
	seq, err = NextSequence(db, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)
}

func TestStdSignatureValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	assert.Nil(t, (&StdSignature{Pubkey: pub, Signature: []byte{1}}).Validate())
	assert.IsErr(t, ErrInvalidSequence, (&StdSignature{Pubkey: pub, Signature: []byte{1}, Sequence: -1}).Validate())
	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{Signature: []byte{1}}).Validate())
	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{Pubkey: pub}).Validate())
}

func TestUserSequence(t *testing.T) {
	u := UserData{Sequence: 5}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(4))
	assert.Nil(t, u.CheckAndIncrementSequence(5))
	assert.Equal(t, int64(6), u.Sequence)

	u.Sequence = maxSequenceValue
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequenceValue))
}
