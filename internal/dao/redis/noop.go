package redis

import (
	"context"
	"time"
)

// NoopCache always misses. It is used when redis is disabled so services keep
// a single code path.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, error) { return "", nil }
func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, ...string) error { return nil }
func (NoopCache) DeleteByPattern(context.Context, string) error { return nil }
func (NoopCache) Generation() uint64 { return 0 }
func (NoopCache) Ping(context.Context) error { return nil }
func (NoopCache) Close() error { return nil }
func (NoopCache) SubmitTask(action func()) { action() }

var _ AsyncCacheService = NoopCache{}
