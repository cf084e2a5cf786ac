package store

import (
	"context"
	"errors"
)

// Keys used by the session layer. Reads and writes are atomic per key; there
// is no cross-key transaction, so a crash between the two writes can leave a
// half-written session, which restore treats as absent.
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the process-wide key-value store backing the session layer.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}
