// Package cache provides TTL-bounded key/value caches for upstream results.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is used when Set is called with a non-positive ttl.
const DefaultTTL = 60 * time.Second

// Cache maps opaque string keys to values that expire after a TTL.
// Implementations never fail: a broken backend behaves like a miss.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
}
