package utils

import (
	"context"
	"testing"

	"github.com/iov-one/lendpool/errors"
	"github.com/iov-one/lendpool/store"
	"github.com/iov-one/lendpool/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "lending/deposit"}}

	ok := weavetest.Decorate(&weavetest.Handler{}, m)
	for i := 0; i < 3; i++ {
		_, err := ok.Deliver(ctx, store.MemStore(), tx)
		require.NoError(t, err)
	}
	// Check calls are not counted.
	_, err := ok.Check(ctx, store.MemStore(), tx)
	require.NoError(t, err)

	failing := weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.Wrap(errors.ErrAmount, "nope")}, m)
	_, err = failing.Deliver(ctx, store.MemStore(), tx)
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.delivered.WithLabelValues("lending/deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed.WithLabelValues("lending/deposit", "13")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.delivered.WithLabelValues("lending/withdraw")))
}

func TestMetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
