package utils

import (
	"context"
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest"
	"github.com/iov-one/lendpool/weavetest/assert"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    Savepoint
		failing bool
		check   bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, failure keeps the write": {
			save:    NewSavepoint(),
			failing: true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back": {
			save:    NewSavepoint().OnCheck(),
			failing: true,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back": {
			save:    NewSavepoint().OnDeliver(),
			failing: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint does not affect check": {
			save:    NewSavepoint().OnDeliver(),
			failing: true,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"both enabled, success writes": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, db.Set(ok, ov))

			var err error
			if tc.failing {
				err = errors.ErrState
			}
			handler := &writingHandler{key: nk, value: nv, err: err}
			h := weavetest.Decorate(handler, tc.save)

			ctx := context.Background()
			if tc.check {
				_, err = h.Check(ctx, db, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(ctx, db, &weavetest.Tx{})
			}
			if tc.failing {
				assert.IsErr(t, errors.ErrState, err)
			} else {
				assert.Nil(t, err)
			}

			for _, k := range tc.written {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, true, has)
			}
			for _, k := range tc.missing {
				has, err := db.Has(k)
				assert.Nil(t, err)
				assert.Equal(t, false, has)
			}
		})
	}
}

// writingHandler writes the key, value pair in both check and deliver
// and returns the error (may be nil)
type writingHandler struct {
	key   []byte
	value []byte
	err   error
}

func (h *writingHandler) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &lendpool.CheckResult{}, h.err
}

func (h *writingHandler) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx) (*lendpool.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &lendpool.DeliverResult{}, h.err
}
