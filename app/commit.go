package app

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// CommitStore wraps the persistent store of the application. Transactions
// are checked and delivered against two separate cache layers that are
// replaced after each commit.
type CommitStore struct {
	committed lendpool.CommitKVStore
	deliver   lendpool.KVCacheWrap
	check     lendpool.KVCacheWrap
}

func NewCommitStore(store lendpool.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs, nil
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (lendpool.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the previous commit. Pending
// check state is dropped.
func (cs *CommitStore) Commit() (lendpool.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return lendpool.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.resetCaches()
	return id, nil
}

func (cs *CommitStore) CheckStore() lendpool.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() lendpool.CacheableKVStore {
	return cs.deliver
}

// genesisKey is kept outside of any bucket namespace.
const genesisKey = "_lp:genesis"

// markGenesis fails if the genesis was already loaded into db.
func markGenesis(db lendpool.KVStore, chainID string) error {
	key := []byte(genesisKey)
	switch loaded, err := db.Has(key); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case loaded:
		return errors.Wrap(errors.ErrState, "genesis already loaded")
	}
	if err := db.Set(key, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
