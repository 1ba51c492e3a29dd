package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the best-effort response cache used by the HTTP handlers. A
// miss and a Redis failure look the same to callers; the store stays the
// source of truth.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

type RedisCache struct {
	R *redis.Client
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	s, err := c.R.Get(ctx, key).Result()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = c.R.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) {
	_ = c.R.Del(ctx, keys...).Err()
}
