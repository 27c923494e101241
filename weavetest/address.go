package weavetest

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/lendpool"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// lendpool.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) lendpool.Address {
	t.Helper()

	addr, err := lendpool.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// NewCondition returns a new unique condition. Conditions are random so
// that tests do not collide, and stand for a signature of an external
// key.
func NewCondition() lendpool.Condition {
	data := make([]byte, 16)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return lendpool.NewCondition("sigs", "ed25519", data)
}

var sequence uint64

// SequenceID returns an unique 8 byte value that can be used as a model
// key, in the same format as an orm sequence produces.
func SequenceID() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, atomic.AddUint64(&sequence, 1))
	return b
}
