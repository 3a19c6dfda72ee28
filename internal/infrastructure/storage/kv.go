// internal/infrastructure/storage/kv.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("storage: key not found")

// Reader reads string values by key
type Reader interface {
	Get(ctx context.Context, key string) (string, error)
}

// KV is the durable key-value storage the client state is saved to
type KV interface {
	Reader
	Set(ctx context.Context, key, value string) error
	Health(ctx context.Context) error
	Close() error
}
