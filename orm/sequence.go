package orm

import (
	"encoding/binary"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// Sequence is a persistent counter. Its values serialized with
// EncodeSequence are ascending both as numbers and as bytes, so they can
// be used as primary keys.
type Sequence struct {
	key []byte
}

// NewSequence returns a counter stored under
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// Next increments the counter and returns the new value.
func (s Sequence) Next(db lendpool.KVStore) (uint64, error) {
	val, err := s.Current(db)
	if err != nil {
		return 0, err
	}
	val++
	if err := db.Set(s.key, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(err, "cannot store sequence")
	}
	return val, nil
}

// NextVal increments the counter and returns the new value as a key.
func (s Sequence) NextVal(db lendpool.KVStore) ([]byte, error) {
	val, err := s.Next(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// Current returns the last value handed out, zero if none was.
func (s Sequence) Current(db lendpool.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	switch {
	case err != nil:
		return 0, errors.Wrap(err, "cannot load sequence")
	case raw == nil:
		return 0, nil
	case len(raw) != 8:
		return 0, errors.Wrap(errors.ErrState, "sequence value must be 8 bytes")
	}
	return binary.BigEndian.Uint64(raw), nil
}

// EncodeSequence returns the big endian representation of given value.
func EncodeSequence(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
