// Package redistest provides an in-memory cache for service tests.
package redistest

import (
	"context"
	"path"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	myredis "mindful_server/internal/dao/redis"
)

// MapCache keeps entries in a map and runs submitted tasks inline. Patterns
// use glob matching like redis SCAN MATCH.
type MapCache struct {
	myredis.NoopCache
	mu   sync.Mutex
	data map[string]string
	gen  atomic.Uint64
}

func New() *MapCache {
	return &MapCache{data: map[string]string{}}
}

func (c *MapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *MapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *MapCache) Delete(_ context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	c.gen.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *MapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.gen.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *MapCache) Generation() uint64 {
	return c.gen.Load()
}

// Has reports whether key is cached.
func (c *MapCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// Keys returns the cached keys in order.
func (c *MapCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ myredis.AsyncCacheService = (*MapCache)(nil)
