package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestSignAndVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	assert.Nil(t, pub.Validate())

	msg := []byte("deposit 100 USDC")
	sig, err := priv.Sign(msg)
	assert.Nil(t, err)

	assert.Equal(t, true, pub.Verify(msg, sig))
	assert.Equal(t, false, pub.Verify([]byte("deposit 101 USDC"), sig))
	assert.Equal(t, false, pub.Verify(msg, sig[:10]))

	other := GenPrivKeyEd25519().PublicKey()
	assert.Equal(t, false, other.Verify(msg, sig))
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a, b)

	if !a.PublicKey().Condition().Equals(b.PublicKey().Condition()) {
		t.Fatal("same seed must produce the same condition")
	}
	if a.PublicKey().Address().Equals(GenPrivKeyEd25519().PublicKey().Address()) {
		t.Fatal("different keys must not share an address")
	}
	assert.Nil(t, a.PublicKey().Address().Validate())
}

func TestMalformedKeys(t *testing.T) {
	assert.IsErr(t, errors.ErrInput, PublicKey([]byte("short")).Validate())
	assert.Equal(t, false, PublicKey([]byte("short")).Verify([]byte("x"), make([]byte, 64)))

	_, err := PrivateKey([]byte("short")).Sign([]byte("x"))
	assert.IsErr(t, errors.ErrInput, err)
}
