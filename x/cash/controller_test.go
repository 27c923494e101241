package cash

import (
	"testing"

	"github.com/iov-one/lendpool/coin"
	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndMove(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	balance, err := ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.True(t, balance.IsEmpty())

	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(500, "SOL")))
	require.NoError(t, ctrl.IssueCoins(db, alice, coin.NewCoin(20, "USDC")))

	err = ctrl.MoveCoins(db, alice, bob, coin.NewCoin(501, "SOL"))
	assert.True(t, errors.ErrAmount.Is(err), "want ErrAmount, got %v", err)

	err = ctrl.MoveCoins(db, alice, bob, coin.NewCoin(0, "SOL"))
	assert.True(t, errors.ErrAmount.Is(err), "want ErrAmount, got %v", err)

	err = ctrl.MoveCoins(db, alice, alice, coin.NewCoin(1, "SOL"))
	assert.True(t, errors.ErrInput.Is(err), "want ErrInput, got %v", err)

	require.NoError(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(500, "SOL")))

	balance, err = ctrl.Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(0, "SOL"), balance.Get("SOL"))
	assert.Equal(t, coin.NewCoin(20, "USDC"), balance.Get("USDC"))

	balance, err = ctrl.Balance(db, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, balance.Count())
	assert.Equal(t, coin.NewCoin(500, "SOL"), balance.Get("SOL"))
}

func TestBalanceInvalidAddress(t *testing.T) {
	ctrl := NewController(NewBucket())
	_, err := ctrl.Balance(store.MemStore(), []byte("short"))
	assert.True(t, errors.ErrInput.Is(err), "want ErrInput, got %v", err)
}

func TestWalletEncoding(t *testing.T) {
	w, err := WalletWith(coin.NewCoinp(7, "USDC"), coin.NewCoinp(3, "SOL"))
	require.NoError(t, err)
	raw, err := w.Marshal()
	require.NoError(t, err)

	var got Wallet
	require.NoError(t, got.Unmarshal(raw))
	require.NoError(t, got.Validate())
	assert.Equal(t, w, &got)
}
