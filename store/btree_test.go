package store

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv lendpool.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheLayers(t *testing.T) {
	base := MemStore()

	pool, vault := []byte("pool:1"), []byte("vault:1")
	assertGetHas(t, base, pool, nil, false)
	require.NoError(t, base.Set(pool, []byte("savings")))
	assertGetHas(t, base, pool, []byte("savings"), true)

	// a layer on top reads through and keeps its own writes
	tx := base.CacheWrap()
	assertGetHas(t, tx, pool, []byte("savings"), true)
	require.NoError(t, tx.Set(vault, []byte("reserve")))
	assertGetHas(t, tx, vault, []byte("reserve"), true)
	assertGetHas(t, base, vault, nil, false)

	require.NoError(t, tx.Write())
	assertGetHas(t, base, vault, []byte("reserve"), true)

	// a discarded layer leaves no trace
	failed := base.CacheWrap()
	require.NoError(t, failed.Set([]byte("deposit:1"), []byte("x")))
	require.NoError(t, failed.Delete(pool))
	failed.Discard()
	assertGetHas(t, base, pool, []byte("savings"), true)
	assertGetHas(t, base, []byte("deposit:1"), nil, false)

	del := base.CacheWrap()
	require.NoError(t, del.Delete(pool))
	assertGetHas(t, del, pool, nil, false)
	require.NoError(t, del.Write())
	assertGetHas(t, base, pool, nil, false)
}

func TestCacheConflicts(t *testing.T) {
	ks := randBytesList(4, 16)
	vs := randBytesList(4, 40)

	parent := MemStore()
	require.NoError(t, parent.Set(ks[1], vs[1]))
	require.NoError(t, parent.Set(ks[2], vs[2]))

	child := parent.CacheWrap()
	require.NoError(t, child.Set(ks[1], vs[0]))
	require.NoError(t, child.Set(ks[3], vs[3]))
	require.NoError(t, child.Delete(ks[2]))

	assertGetHas(t, parent, ks[1], vs[1], true)
	assertGetHas(t, parent, ks[2], vs[2], true)
	assertGetHas(t, parent, ks[3], nil, false)

	want := func(kv lendpool.ReadOnlyKVStore) {
		assertGetHas(t, kv, ks[1], vs[0], true)
		assertGetHas(t, kv, ks[2], nil, false)
		assertGetHas(t, kv, ks[3], vs[3], true)
	}
	want(child)
	require.NoError(t, child.Write())
	want(parent)
}

func TestMemBatch(t *testing.T) {
	base := MemStore()
	b := NewMemBatch(base)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Delete([]byte("b")))

	ops := b.Ops()
	require.Len(t, ops, 2)
	assert.False(t, ops[0].IsDelete())
	assert.Equal(t, []byte("a"), ops[0].Key)
	assert.True(t, ops[1].IsDelete())

	// nothing is visible before the write
	assertGetHas(t, base, []byte("a"), nil, false)
	require.NoError(t, b.Write())
	assertGetHas(t, base, []byte("a"), []byte("1"), true)
	assert.Empty(t, b.Ops())
}

func randBytesList(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = make([]byte, size)
		if _, err := rand.Read(res[i]); err != nil {
			panic(err)
		}
	}
	return res
}
