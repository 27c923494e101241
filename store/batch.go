package store

import (
	"github.com/iov-one/lendpool"
)

// EmptyKVStore never holds any data. It is the bottom layer of in memory
// stores.
type EmptyKVStore struct{}

var _ lendpool.KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete(key []byte) error { return nil }
func (e EmptyKVStore) NewBatch() lendpool.Batch { return NewMemBatch(e) }

// Op is a single write recorded by a batch. A nil value means deletion.
type Op struct {
	Key   []byte
	Value []byte
}

// IsDelete returns true if the operation removes the key.
func (o Op) IsDelete() bool {
	return o.Value == nil
}

// Apply performs the operation on the given store.
func (o Op) Apply(out lendpool.SetDeleter) error {
	if o.IsDelete() {
		return out.Delete(o.Key)
	}
	return out.Set(o.Key, o.Value)
}

// MemBatch records writes in memory and replays them on Write in the
// order they were made. Write is not atomic, so it must only be used on
// top of in memory stores.
type MemBatch struct {
	out lendpool.SetDeleter
	ops []Op
}

var _ lendpool.Batch = (*MemBatch)(nil)

// NewMemBatch returns an empty batch writing to out.
func NewMemBatch(out lendpool.SetDeleter) *MemBatch {
	return &MemBatch{out: out}
}

func (b *MemBatch) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops = append(b.ops, Op{Key: key, Value: value})
	return nil
}

func (b *MemBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{Key: key})
	return nil
}

// Write replays all recorded operations and empties the batch.
func (b *MemBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// Ops returns the operations waiting to be written.
func (b *MemBatch) Ops() []Op {
	return b.ops
}

func (b *MemBatch) reset() {
	b.ops = nil
}
