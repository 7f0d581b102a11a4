// Package cache holds the pairing-set caches shared by every tournament.
// All backends satisfy httpcache.Cache, which is also the method set the
// round lifecycle expects.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/redis/go-redis/v9"
)

type Cache = httpcache.Cache

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

type Options struct {
	Backend  string
	RedisURL string
	Bucket   string
	Gzip     bool
	TTL      time.Duration
	Prefix   string
}

// New builds the configured backend. When Redis or S3 cannot be reached the
// in-memory cache is used instead and a warning is logged; pairings are
// always recomputable so a degraded cache never blocks startup.
func New(ctx context.Context, opts Options, logger *slog.Logger) (Cache, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return httpcache.NewMemoryCache(), noop, nil

	case BackendRedis:
		redisOpts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("cache: invalid redis url: %w", err)
		}
		client := redis.NewClient(redisOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			logger.Warn("redis cache unavailable, falling back to memory", slog.Any("error", err))
			return httpcache.NewMemoryCache(), noop, nil
		}
		prefix := opts.Prefix
		if prefix != "" && !strings.HasSuffix(prefix, ":") {
			prefix += ":"
		}
		return NewRedisCache(ctx, client, prefix, opts.TTL, logger), client.Close, nil

	case BackendS3:
		if opts.Bucket == "" {
			return nil, nil, fmt.Errorf("cache: s3 backend requires a bucket")
		}
		s3c := NewS3Cache(ctx, opts.Bucket, opts.Prefix, opts.Gzip, logger)
		if err := s3c.Init(); err != nil {
			logger.Warn("s3 cache unavailable, falling back to memory", slog.Any("error", err))
			return httpcache.NewMemoryCache(), noop, nil
		}
		return s3c, noop, nil
	}

	return nil, nil, fmt.Errorf("cache: unknown backend %q", opts.Backend)
}

type namespaced struct {
	inner  Cache
	prefix string
}

// Namespace scopes every key of c under prefix.
func Namespace(c Cache, prefix string) Cache {
	return &namespaced{inner: c, prefix: prefix}
}

func (n *namespaced) Get(key string) ([]byte, bool) { return n.inner.Get(n.prefix + key) }

func (n *namespaced) Set(key string, data []byte) { n.inner.Set(n.prefix+key, data) }

func (n *namespaced) Delete(key string) { n.inner.Delete(n.prefix + key) }

// TournamentPrefix is the namespace used for one tournament's rounds.
func TournamentPrefix(id int64) string {
	return fmt.Sprintf("tournament:%d:", id)
}
