package app

import (
	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder lendpool.TxDecoder
	handler lendpool.Handler
}

// NewBaseApp constructs a basic application
func NewBaseApp(store *StoreApp, decoder lendpool.TxDecoder, handler lendpool.Handler) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
	}
}

// DeliverTx decodes given transaction and dispatches it to the handler.
// All changes made by a failing transaction are dropped.
func (b BaseApp) DeliverTx(txBytes []byte) (*lendpool.DeliverResult, error) {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := lendpool.WithLogInfo(b.blockContext,
		"call", "deliver_tx",
		"path", lendpool.GetPath(tx))

	cache := b.store.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write transaction")
	}
	return res, nil
}

// CheckTx decodes given transaction and dispatches it to the handler.
// Changes made by a successful check are visible to the following checks
// until the next commit.
func (b BaseApp) CheckTx(txBytes []byte) (*lendpool.CheckResult, error) {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := lendpool.WithLogInfo(b.blockContext,
		"call", "check_tx",
		"path", lendpool.GetPath(tx))

	cache := b.store.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check")
	}
	return res, nil
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx lendpool.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}
