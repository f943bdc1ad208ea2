package utils

import (
	"time"

	"github.com/iov-one/quorum"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ quorum.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx quorum.Context, tx quorum.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := quorum.GetLogger(ctx).With(
		"path", quorum.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
