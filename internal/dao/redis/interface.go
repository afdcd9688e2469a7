// Package redis defines the cache used by the services and its go-redis
// implementation. Services depend on the interfaces, never on the client.
package redis

import (
	"context"
	"time"
)

// CacheService is a string key/value cache. A miss is ("", nil).
type CacheService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern removes every key matching a glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
	// Generation changes on every Delete or DeleteByPattern. It is bumped
	// before the keys are removed.
	Generation() uint64
	Ping(ctx context.Context) error
	Close() error
}

// AsyncCacheService adds fire-and-forget work for cache writes and invalidation.
type AsyncCacheService interface {
	CacheService
	SubmitTask(action func())
}
