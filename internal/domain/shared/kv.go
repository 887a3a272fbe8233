package shared

import (
	"context"
	"time"
)

// KeyValueStore is an injected key-value store with explicit TTL semantics.
// It backs idempotency keys and rate-limit counters; tests substitute a
// deterministic in-memory implementation.
type KeyValueStore interface {
	// SetIfAbsent stores value under key with a TTL.
	// Returns true if the key was newly set, false if it already existed.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Get returns the value for key, or ("", false, nil) if absent or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Increment atomically increments the counter at key, setting the TTL on
	// first write, and returns the new value.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Close releases resources held by the store
	Close() error
}
