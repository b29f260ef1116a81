package asset

import "github.com/iov-one/bazaar/errors"

var (
	ErrUnknownCollection = errors.Register(1600, "unknown collection")
	ErrUnknownToken      = errors.Register(1601, "unknown token")
	ErrDuplicateToken    = errors.Register(1602, "token already exists")
	ErrInvalidKey        = errors.Register(1603, "invalid asset key")
	ErrRejected          = errors.Register(1604, "token rejected by the recipient")
)
