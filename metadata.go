package lendpool

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lendpool/errors"
)

// Metadata is the header every stored record carries. Schema is the
// version of the record layout and starts at 1.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "invalid schema version")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataData)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataData)(m))
}

// metadataData has the layout of Metadata without its Marshal method, so
// that proto encodes it by reflection instead of calling back.
type metadataData Metadata

func (m *metadataData) Reset()         { *m = metadataData{} }
func (m *metadataData) String() string { return proto.CompactTextString(m) }
func (*metadataData) ProtoMessage()    {}
