package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://localhost/pairing?sslmode=disable",
		"JWT_SECRET_KEY":      "secret",
		"ADMIN_PASSWORD_HASH": "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := fromEnv(envOf(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 2, cfg.DefaultThreshold)
	assert.Zero(t, cfg.RandomSeed)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.CacheGzip)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	env := baseEnv()
	env["SERVER_PORT"] = "9090"
	env["DEFAULT_THRESHOLD"] = "3"
	env["RANDOM_SEED"] = "42"
	env["CACHE_BACKEND"] = "Redis"
	env["REDIS_URL"] = "redis://localhost:6379/0"
	env["CACHE_TTL"] = "90m"
	env["CACHE_GZIP"] = "true"
	env["ALLOWED_ORIGINS"] = "https://a.example, https://b.example,"

	cfg, err := fromEnv(envOf(env))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 3, cfg.DefaultThreshold)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.CacheGzip)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}},
		{"missing jwt key", map[string]string{"JWT_SECRET_KEY": ""}},
		{"missing admin hash", map[string]string{"ADMIN_PASSWORD_HASH": ""}},
		{"port not a number", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"zero threshold", map[string]string{"DEFAULT_THRESHOLD": "0"}},
		{"bad seed", map[string]string{"RANDOM_SEED": "-1"}},
		{"unknown backend", map[string]string{"CACHE_BACKEND": "memcached"}},
		{"redis without url", map[string]string{"CACHE_BACKEND": "redis"}},
		{"s3 without bucket", map[string]string{"CACHE_BACKEND": "s3"}},
		{"bad ttl", map[string]string{"CACHE_TTL": "soon"}},
		{"bad gzip", map[string]string{"CACHE_GZIP": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			for k, v := range tt.set {
				env[k] = v
			}
			_, err := fromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
