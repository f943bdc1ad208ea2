package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quorum",
		Subsystem: "tx",
		Name:      "delivered_total",
		Help:      "Number of delivered transactions by message path and result code.",
	}, []string{"path", "code"})

	txDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quorum",
		Subsystem: "tx",
		Name:      "deliver_duration_seconds",
		Help:      "Time spent delivering a transaction.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"path"})
)

// Metrics counts delivered transactions and observes their duration.
// Check is not instrumented.
type Metrics struct{}

var _ quorum.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator
func NewMetrics() Metrics {
	return Metrics{}
}

// Check just passes the request along
func (Metrics) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the outcome of the transaction.
func (Metrics) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	path := quorum.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	txCount.WithLabelValues(path, strconv.FormatUint(uint64(code), 10)).Inc()
	txDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return res, err
}
