package cache

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("key not found in cache")
	ErrInvalidKey = errors.New("invalid cache key")
	ErrClosed     = errors.New("cache is closed")
)

// Cache is a small byte-blob store. The service uses it to mirror the result
// list as one serialized JSON value under a fixed key.
type Cache interface {
	Set(ctx context.Context, key string, value []byte) error

	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	Close() error
}
