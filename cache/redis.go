package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisCache stores entries as plain Redis strings with an optional TTL.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	ctx    context.Context
	logger *slog.Logger
}

func NewRedisCache(ctx context.Context, client redis.Cmdable, prefix string, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl, ctx: ctx, logger: logger}
}

func (c *RedisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(c.ctx, redisOpTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("redis cache get failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(key string, data []byte) {
	ctx, cancel := context.WithTimeout(c.ctx, redisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Error("redis cache set failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *RedisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(c.ctx, redisOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.logger.Error("redis cache delete failed", slog.String("key", key), slog.Any("error", err))
	}
}
