// Package cachemanager provides a generic TTL cache with a read-through
// wrapper for store-backed lookups.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a generic TTL key/value cache.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetMultiple(ctx context.Context, keys []K) (map[K]V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
