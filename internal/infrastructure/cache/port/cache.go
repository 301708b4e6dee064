package port

import (
	"context"
	"errors"
	"time"
)

// ErrMiss signals that a key is absent. Callers use it to distinguish a miss
// from a transport or server error.
var ErrMiss = errors.New("cache: miss")

// Cache is the minimal key-value contract used by the application, mainly to
// hold scraper results. Implementations must be safe for concurrent use and
// honor caller-driven timeouts via the context.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}
