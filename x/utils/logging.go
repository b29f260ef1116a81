package utils

import (
	"time"

	"github.com/iov-one/bazaar"
)

// Logging is a decorator that logs every transaction with its duration.
type Logging struct{}

var _ bazaar.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx bazaar.Context, tx bazaar.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := bazaar.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if m, merr := tx.GetMsg(); merr == nil && m != nil {
		logger = logger.With("path", m.Path())
	}

	// An empty message is still logged, the keyvals carry the
	// information.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
