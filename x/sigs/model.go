package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/crypto"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/orm"
)

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is Number.MAX_SAFE_INTEGER.
const maxSequenceValue = (1 << 53) - 1

// StdSignature is a signature of a transaction together with the public
// key that created it and the signer's sequence it was made for.
type StdSignature struct {
	Pubkey    crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3"`
	Signature []byte           `protobuf:"bytes,2,opt,name=signature,proto3"`
	Sequence  int64            `protobuf:"varint,3,opt,name=sequence,proto3"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignatureData)(s))
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignatureData)(s))
}

type stdSignatureData StdSignature

func (m *stdSignatureData) Reset()         { *m = stdSignatureData{} }
func (m *stdSignatureData) String() string { return proto.CompactTextString(m) }
func (*stdSignatureData) ProtoMessage()    {}

// UserData holds the public key and the next expected sequence of a
// signer. It is stored under the address of the public key.
type UserData struct {
	Metadata *lendpool.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3"`
	Pubkey   crypto.PublicKey   `protobuf:"bytes,2,opt,name=pubkey,proto3"`
	Sequence int64              `protobuf:"varint,3,opt,name=sequence,proto3"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataData)(u))
}

func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataData)(u))
}

type userDataData UserData

func (m *userDataData) Reset()         { *m = userDataData{} }
func (m *userDataData) String() string { return proto.CompactTextString(m) }
func (*userDataData) ProtoMessage()    {}

// NewUserBucket returns a bucket for signer accounts, keyed by the
// address of the public key.
func NewUserBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs", &UserData{})
}

// loadUser returns the account of given key, or a fresh one with sequence
// zero if the key has never signed before.
func loadUser(db lendpool.ReadOnlyKVStore, users orm.ModelBucket, pubkey crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := users.One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &lendpool.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}

// NextSequence returns the sequence the next signature of given key must
// be made for.
func NextSequence(db lendpool.ReadOnlyKVStore, pubkey crypto.PublicKey) (int64, error) {
	u, err := loadUser(db, NewUserBucket(), pubkey)
	if err != nil {
		return 0, err
	}
	return u.Sequence, nil
}
