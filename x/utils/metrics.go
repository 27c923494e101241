package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/lendpool"
	"github.com/iov-one/lendpool/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed messages and measures
// the time spent in the handler. Only Deliver calls are measured.
type Metrics struct {
	delivered *prometheus.CounterVec
	failed    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

var _ lendpool.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator with all collectors registered
// in given registerer. It panics if the collectors are already
// registered, the same way prometheus.MustRegister does.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lendpool",
				Subsystem: "msg",
				Name:      "delivered_total",
				Help:      "Number of messages successfully delivered, by path.",
			},
			[]string{"path"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lendpool",
				Subsystem: "msg",
				Name:      "failed_total",
				Help:      "Number of messages rejected during delivery, by path and error code.",
			},
			[]string{"path", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lendpool",
				Subsystem: "msg",
				Name:      "deliver_seconds",
				Help:      "Time spent delivering a message, by path.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"path"},
		),
	}
	reg.MustRegister(m.delivered, m.failed, m.latency)
	return m
}

// Check is not instrumented.
func (m Metrics) Check(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Checker) (*lendpool.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver counts the result of the message delivery.
func (m Metrics) Deliver(ctx lendpool.Context, db lendpool.KVStore, tx lendpool.Tx, next lendpool.Deliverer) (*lendpool.DeliverResult, error) {
	path := lendpool.GetPath(tx)
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		m.failed.WithLabelValues(path, errorCode(err)).Inc()
	} else {
		m.delivered.WithLabelValues(path).Inc()
	}
	return res, err
}

func errorCode(err error) string {
	return strconv.FormatUint(uint64(errors.ABCICode(err)), 10)
}
