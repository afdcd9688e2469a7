package redis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"mindful_server/pkg/errorx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache implements AsyncCacheService over go-redis with a fixed pool of
// workers draining a bounded task channel.
type RedisCache struct {
	client   *redis.Client
	taskChan chan func()
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	gen      atomic.Uint64
}

func NewRedisCache(client *redis.Client, workerNum, taskChanSize int) *RedisCache {
	if workerNum < 1 {
		workerNum = 1
	}
	rc := &RedisCache{
		client:   client,
		taskChan: make(chan func(), taskChanSize),
		done:     make(chan struct{}),
	}
	rc.wg.Add(workerNum)
	for i := 0; i < workerNum; i++ {
		go rc.startWorker()
	}
	zap.L().Info("redis cache workers started", zap.Int("workers", workerNum), zap.Int("buffer", taskChanSize))
	return rc
}

func (r *RedisCache) startWorker() {
	defer r.wg.Done()
	for {
		select {
		case task := <-r.taskChan:
			r.run(task)
		case <-r.done:
			// drain what was queued before shutdown
			for {
				select {
				case task := <-r.taskChan:
					r.run(task)
				default:
					return
				}
			}
		}
	}
}

func (r *RedisCache) run(task func()) {
	if task == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("redis cache task panic", zap.Any("recover", rec))
		}
	}()
	task()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errorx.Wrapf(err, errorx.CodeCacheError, "redis get key %s", key)
	}
	return value, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set key %s", key)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	r.gen.Add(1)
	if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis unlink keys %v", keys)
	}
	return nil
}

func (r *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	r.gen.Add(1)
	var cursor uint64
	for {
		var keys []string
		var err error
		keys, cursor, err = r.client.Scan(ctx, cursor, pattern, 500).Result()
		if err != nil {
			return errorx.Wrapf(err, errorx.CodeCacheError, "redis scan pattern %s", pattern)
		}
		if len(keys) > 0 {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				return errorx.Wrapf(err, errorx.CodeCacheError, "redis unlink keys with pattern %s", pattern)
			}
		}
		if cursor == 0 {
			return nil
		}
	}
}

func (r *RedisCache) Generation() uint64 {
	return r.gen.Load()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "redis ping")
	}
	return nil
}

// SubmitTask queues action for a worker. When the queue is full, or the cache
// is closed, the action runs on the caller's goroutine.
func (r *RedisCache) SubmitTask(action func()) {
	select {
	case <-r.done:
		r.run(action)
		return
	default:
	}
	select {
	case r.taskChan <- action:
	default:
		zap.L().Warn("redis cache task channel full, executing synchronously")
		r.run(action)
	}
}

// Close stops the workers after they drain the queue, then closes the client.
func (r *RedisCache) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		r.wg.Wait()
		if r.client != nil {
			err = r.client.Close()
		}
	})
	return err
}

var _ AsyncCacheService = (*RedisCache)(nil)
