package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the read-through cache layer.
// Implementations can be swapped (Redis, in-memory, none).
type Cache interface {
	// Get loads a value into dest.
	// found = true: cache hit, data unmarshalled into dest
	// found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
