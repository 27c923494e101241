package cash

import (
	"testing"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `[
		{"address": "0102030405060708090021222324252627282930", "coins": ["100 SOL", {"ticker": "USDC", "amount": 25}]},
		{"address": "cond:lending/vault/0001", "coins": ["1 SOL"]}
	]`

	cases := map[string]struct {
		opts    lendpool.Options
		wantErr *errors.Error
	}{
		"no data": {
			opts: lendpool.Options{},
		},
		"unrelated section": {
			opts: lendpool.Options{"foo": []byte(`"bar"`)},
		},
		"accounts": {
			opts: lendpool.Options{"cash": []byte(genesis)},
		},
		"missing address": {
			opts:    lendpool.Options{"cash": []byte(`[{"coins": ["1 SOL"]}]`)},
			wantErr: errors.ErrEmpty,
		},
		"malformed coin": {
			opts:    lendpool.Options{"cash": []byte(`[{"address": "0102030405060708090021222324252627282930", "coins": ["1.5 SOL"]}]`)},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, db)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(lendpool.Options{"cash": []byte(genesis)}, db))
	ctrl := NewController(NewBucket())

	addr, err := lendpool.ParseAddress("0102030405060708090021222324252627282930")
	require.NoError(t, err)
	balance, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(100, "SOL"), balance.Get("SOL"))
	assert.Equal(t, coin.NewCoin(25, "USDC"), balance.Get("USDC"))

	vault := lendpool.NewCondition("lending", "vault", []byte{0, 1}).Address()
	balance, err = ctrl.Balance(db, vault)
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(1, "SOL"), balance.Get("SOL"))
}
