package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL       string
	JWTSecretKey      string
	ServerPort        int
	AdminPasswordHash string

	DefaultThreshold int
	// RandomSeed fixes the pairing randomness; 0 seeds from the clock.
	RandomSeed uint64

	CacheBackend string
	RedisURL     string
	CacheBucket  string
	CacheGzip    bool
	CacheTTL     time.Duration

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	AllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	adminHash := getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	port, err := intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	threshold, err := intVar(getenv, "DEFAULT_THRESHOLD", 2)
	if err != nil {
		return nil, err
	}
	if threshold < 1 {
		return nil, fmt.Errorf("DEFAULT_THRESHOLD must be at least 1, got %d", threshold)
	}

	var seed uint64
	if s := getenv("RANDOM_SEED"); s != "" {
		seed, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED environment variable: %w", err)
		}
	}

	backend := strings.ToLower(getenv("CACHE_BACKEND"))
	if backend == "" {
		backend = "memory"
	}
	redisURL := getenv("REDIS_URL")
	bucket := getenv("CACHE_BUCKET")
	switch backend {
	case "memory":
	case "redis":
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	case "s3":
		if bucket == "" {
			return nil, fmt.Errorf("CACHE_BUCKET is required when CACHE_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("CACHE_BACKEND must be memory, redis or s3, got %q", backend)
	}

	gzip := false
	if s := getenv("CACHE_GZIP"); s != "" {
		gzip, err = strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_GZIP environment variable: %w", err)
		}
	}

	ttl := 24 * time.Hour
	if s := getenv("CACHE_TTL"); s != "" {
		ttl, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL environment variable: %w", err)
		}
		if ttl < 0 {
			return nil, fmt.Errorf("CACHE_TTL must not be negative, got %s", ttl)
		}
	}

	var origins []string
	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		AdminPasswordHash: adminHash,
		DefaultThreshold:  threshold,
		RandomSeed:        seed,
		CacheBackend:      backend,
		RedisURL:          redisURL,
		CacheBucket:       bucket,
		CacheGzip:         gzip,
		CacheTTL:          ttl,
		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
		AllowedOrigins:    origins,
	}

	return cfg, nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	s := getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}
