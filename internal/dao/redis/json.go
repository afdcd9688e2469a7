package redis

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// GetJSON decodes a cached value into T. ok is false on a miss. A value that
// no longer decodes is treated as a miss.
func GetJSON[T any](ctx context.Context, cache CacheService, key string) (value T, ok bool, err error) {
	raw, err := cache.Get(ctx, key)
	if err != nil || raw == "" {
		return value, false, err
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, nil
	}
	return value, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, cache CacheService, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return cache.Set(ctx, key, string(raw), ttl)
}

// WriteBack stores v under key on a cache worker. gen is the Generation read
// before v was loaded from the database. The write is skipped when an
// invalidation ran since then, and undone when one lands while it is in flight.
func WriteBack(cache AsyncCacheService, key string, v any, ttl time.Duration, gen uint64) {
	cache.SubmitTask(func() {
		if cache.Generation() != gen {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := SetJSON(ctx, cache, key, v, ttl); err != nil {
			zap.L().Warn("write back cache", zap.String("key", key), zap.Error(err))
			return
		}
		if cache.Generation() != gen {
			if err := cache.Delete(ctx, key); err != nil {
				zap.L().Warn("undo stale cache write", zap.String("key", key), zap.Error(err))
			}
		}
	})
}
