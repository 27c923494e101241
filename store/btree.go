/*
Package store implements the in memory layers of the record store. A
BTreeCacheWrap keeps the writes of a single transaction in a btree on top
of another store, so that they can be read back and then either written
down or dropped.
*/
package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/lendpool"
)

const (
	// btree degree
	degree = 2
	// freeListSize is the number of nodes kept for reuse
	freeListSize = btree.DefaultFreeListSize
)

// MemStore returns a store that keeps everything in memory. There is no
// persistence.
func MemStore() lendpool.CacheableKVStore {
	var base EmptyKVStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// BTreeCacheWrap caches reads and writes of a store. Writes are kept in a
// btree and recorded in a batch that is flushed to the parent by Write.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent lendpool.ReadOnlyKVStore
	batch  lendpool.Batch
}

var _ lendpool.KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. All writes go to batch,
// which must write to the parent. A nil free list allocates a new one.
func NewBTreeCacheWrap(parent lendpool.ReadOnlyKVStore, batch lendpool.Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(degree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap returns another cache layer on top of this one. Both layers
// share the free list.
func (c BTreeCacheWrap) CacheWrap() lendpool.KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() lendpool.Batch {
	return NewMemBatch(c)
}

// Write flushes all writes to the parent store and discards the cache.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all cached writes.
func (c BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
	if b, ok := c.batch.(*MemBatch); ok {
		b.reset()
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := c.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// entry is a cached write. Entries are ordered by key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
