package lendpool

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iov-one/lendpool/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	// try logger with default
	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	// changing the info, should modify the logger
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := BlockTime(bg)
	assert.True(t, errors.ErrHuman.Is(err))

	_, err = BlockTime(WithBlockTime(bg, time.Time{}))
	assert.True(t, errors.ErrHuman.Is(err))

	now := time.Unix(1554370540, 0)
	ctx := WithBlockTime(bg, now)
	got, err := BlockTime(ctx)
	assert.NoError(t, err)
	assert.Equal(t, now, got)

	// no reset
	assert.Panics(t, func() { WithBlockTime(ctx, now) })
}

func TestChainID(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, "", GetChainID(bg))

	ctx := WithChainID(bg, "lend-devnet")
	assert.Equal(t, "lend-devnet", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "other-chain") })
	assert.Panics(t, func() { WithChainID(bg, "no") })
	assert.Panics(t, func() { WithChainID(bg, "spaces are bad") })
}
