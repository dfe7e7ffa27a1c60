// Package kv defines the expiring key-value abstraction session storage is
// built on. Implementations own eviction: a key written with a TTL must read
// as absent once that TTL has elapsed without a newer write.
package kv

import (
	"context"
	"time"
)

// Store is a minimal expiring key-value capability. Get reports whether the
// key was present and unexpired. Put replaces the value and restarts the TTL
// clock. Single-key operations are atomic; there are no cross-key
// transactions.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
}
