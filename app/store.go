package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed to initialize the
// state from the genesis and to open consecutive blocks.
//
// It should be embedded in another struct for CheckTx and DeliverTx.
// All state changing calls are serialized.
type StoreApp struct {
	mu sync.Mutex

	logger log.Logger

	// chainID identifies the chain in signatures, logs and in the
	// genesis marker
	chainID string

	// Database state (committed, check, deliver....)
	store *CommitStore

	// Code to initialize from a genesis file
	initializer lendpool.Initializer

	// baseContext contains context info that is valid for
	// lifetime of this app
	baseContext lendpool.Context

	// blockContext contains context info that is valid for the
	// current block (eg. block time), reset on BeginBlock
	blockContext lendpool.Context
	blockTime    time.Time
}

// NewStoreApp initializes this app into a ready state with some defaults.
// The chain ID is attached to the base context of every transaction.
func NewStoreApp(chainID string, store lendpool.CommitKVStore, baseContext lendpool.Context) (*StoreApp, error) {
	if !lendpool.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	baseContext = lendpool.WithChainID(baseContext, chainID)
	s := &StoreApp{
		chainID:      chainID,
		store:        cs,
		baseContext:  baseContext,
		blockContext: baseContext,
		logger:       log.NewNopLogger(),
	}
	return s, nil
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init lendpool.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = lendpool.WithLogger(s.baseContext, logger)
	s.blockContext = lendpool.WithLogger(s.blockContext, logger)
	s.logger = logger
	return s
}

// ChainID returns the identifier of the chain this app serves.
func (s *StoreApp) ChainID() string {
	return s.chainID
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// InitChain loads the initial state from given genesis application state.
// It can be done only once for a store.
func (s *StoreApp) InitChain(appState []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app state not set in genesis")
	}
	var opts lendpool.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse app state: %s", err)
	}

	cache := s.store.DeliverStore().CacheWrap()
	if err := markGenesis(cache, s.chainID); err != nil {
		cache.Discard()
		return err
	}
	if s.initializer != nil {
		if err := s.initializer.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis state")
	}
	s.logger.Info("genesis loaded", "chain", s.chainID)
	return nil
}

// BeginBlock opens a new block. All transactions delivered until the
// next BeginBlock call use given time as the current time. Block time
// must not go backward.
func (s *StoreApp) BeginBlock(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.IsZero() {
		return errors.Wrap(errors.ErrInput, "zero block time")
	}
	if now.Before(s.blockTime) {
		return errors.Wrapf(errors.ErrState, "block time %s before the previous block %s", now, s.blockTime)
	}
	s.blockTime = now
	s.blockContext = lendpool.WithBlockTime(s.baseContext, now)
	return nil
}

// Commit flushes all delivered transactions and persists them as a new
// version of the store.
func (s *StoreApp) Commit() (lendpool.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.logger.Info("commit synced", "version", id.Version, "hash", id.Hash)
	return id, nil
}

// LatestVersion returns the version and hash of the last commit.
func (s *StoreApp) LatestVersion() (lendpool.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CommitInfo()
}

// View calls fn with a read only view of the delivered but not yet
// committed state.
func (s *StoreApp) View(fn func(db lendpool.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.store.DeliverStore().CacheWrap()
	defer cache.Discard()
	return fn(cache)
}
