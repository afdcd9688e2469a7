package redis

import (
	"context"
	"fmt"
	"strconv"

	"mindful_server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Init connects to redis when enabled and returns the cache. A disabled or
// unreachable redis yields NoopCache so the server still starts.
func Init(ctx context.Context, cfg *config.RedisConfig) AsyncCacheService {
	if !cfg.Enabled {
		zap.L().Info("redis disabled, caching off")
		return NoopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Db,
		PoolSize:     50,
		MinIdleConns: max(cfg.WorkerNum, 1),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unreachable, caching off", zap.Error(fmt.Errorf("ping %s: %w", client.Options().Addr, err)))
		_ = client.Close()
		return NoopCache{}
	}
	return NewRedisCache(client, cfg.WorkerNum, cfg.TaskChanSize)
}
