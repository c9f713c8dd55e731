package cache

import (
	"context"
	"time"
)

// Cache is the contract for the shared cache layer. It allows swapping the
// implementation (Redis in production, fakes in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	// Used for tag-style invalidation (e.g. "prismic:*").
	DeletePattern(ctx context.Context, pattern string) error

	// Increment atomically increments a counter key.
	Increment(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
