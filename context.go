package bazaar

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the context passed between the app, decorators and
// handlers.
type Context = context.Context

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeyEventLog
)

var (
	// DefaultLogger is used by all contexts that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID ensures valid chain ids.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString
)

// WithHeader sets the block header for the context. It panics when the
// header is already set.
func WithHeader(ctx Context, header abci.Header) Context {
	if _, ok := ctx.Value(contextKeyHeader).(abci.Header); ok {
		panic("header already set")
	}
	return context.WithValue(ctx, contextKeyHeader, header)
}

// GetHeader returns the current block header.
func GetHeader(ctx Context) (abci.Header, bool) {
	val, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return val, ok
}

// BlockTime returns the time declared by the block header. Block time is
// the only time source a deterministic state machine may use.
func BlockTime(ctx Context) (time.Time, bool) {
	h, ok := GetHeader(ctx)
	if !ok {
		return time.Time{}, false
	}
	return h.Time, true
}

// WithHeight sets the block height for the context. It panics when the
// height is already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := ctx.Value(contextKeyHeight).(int64); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the context. It panics when the chain
// id is already set or it is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id: %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id, or an empty string if not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger sets the logger for the context. Unlike other setters this
// one can be called many times.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo passes all the keyvals to the logger carried by the context
// and returns a context with the extended logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the logger carried by the context, or the
// DefaultLogger if none is set.
func GetLogger(ctx Context) log.Logger {
	if val, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return val
	}
	return DefaultLogger
}
