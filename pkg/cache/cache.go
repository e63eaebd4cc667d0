// Package cache provides byte-oriented caches for PyPI responses.
//
// All backends implement [Cache]. [FileCache] is the default for the CLI,
// [NullCache] disables caching, [MemoryCache] keeps recent entries in an
// LRU in front of another cache, and [RedisCache] shares entries between
// machines.
//
// A cache miss is reported with ok=false and a nil error. Errors are
// reserved for backend failures; callers treat them as misses.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or when the
	// entry has expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
