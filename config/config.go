package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env             string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Redis           RedisConfig
	RateLimit       RateLimitConfig
	HistorySize     int
}

type RedisConfig struct {
	// Addr is empty when results are cached in memory.
	Addr     string
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			CacheTTL: getDuration("CACHE_TTL", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Capacity: getInt("RATE_LIMIT_CAPACITY", 30),
			Window:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		HistorySize: getInt("HISTORY_SIZE", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using default",
			"key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment, using default",
			"key", key, "value", value, "default", defaultValue.String())
		return defaultValue
	}
	return d
}
