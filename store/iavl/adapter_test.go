package iavl

import (
	"io/ioutil"
	"os"
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

// TestCacheGetSet does basic sanity checks on our cache
func TestCacheGetSet(t *testing.T) {
	base := NewMemCommitStore().Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGetHas(t, base, k3, nil, false)
}

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next version
func TestCommitOverwrite(t *testing.T) {
	commit := NewMemCommitStore()
	// only one to trigger a cleanup
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)
	assert.Empty(t, id.Hash)

	k1, k2 := []byte("pool"), []byte("deposit")
	parent := commit.CacheWrap()
	require.NoError(t, parent.Set(k1, []byte("one")))
	require.NoError(t, parent.Set(k2, []byte("two")))
	require.NoError(t, parent.Write())

	// not visible in the committed state before commit
	got, err := commit.Get(k1)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k1)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)

	child := commit.CacheWrap()
	require.NoError(t, child.Set(k1, []byte("uno")))
	require.NoError(t, child.Delete(k2))

	// a side cache wrap sees the committed state only
	side := commit.CacheWrap()
	assertGetHas(t, side, k1, []byte("one"), true)
	assertGetHas(t, side, k2, []byte("two"), true)

	require.NoError(t, child.Write())
	assertGetHas(t, commit.CacheWrap(), k1, []byte("uno"), true)
	assertGetHas(t, commit.CacheWrap(), k2, nil, false)

	id2, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.NotEqual(t, id.Hash, id2.Hash)
}

func TestPersistence(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "lendpool")
	require.NoError(t, commit.LoadLatestVersion())
	require.NoError(t, commit.Adapter().Set([]byte("key"), []byte("value")))
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
}
