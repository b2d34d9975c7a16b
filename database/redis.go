package database

import (
	"PatientDesk/config"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// RedisConfigFrom extracts the Redis settings from the application config.
func RedisConfigFrom(cfg *config.AppConfig) RedisConfig {
	return RedisConfig{
		URL:          cfg.RedisAddress,
		PoolSize:     cfg.RedisPoolSize,
		DialTimeout:  cfg.RedisDialTimeout,
		MinIdleConns: cfg.RedisMinIdleConns,
		ReadTimeout:  cfg.RedisReadTimeout,
		MaxRetries:   cfg.RedisMaxRetries,
	}
}

// NewRedisClient creates a Redis client with the provided configuration and
// checks that the server answers.
func NewRedisClient(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.PoolSize > 0 {
		opt.PoolSize = config.PoolSize
	}
	opt.MinIdleConns = config.MinIdleConns
	if config.DialTimeout > 0 {
		opt.DialTimeout = config.DialTimeout
	}
	if config.ReadTimeout > 0 {
		opt.ReadTimeout = config.ReadTimeout
	}
	opt.MaxRetries = config.MaxRetries

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	log.Info().
		Int("pool_size", opt.PoolSize).
		Int("min_idle_conns", opt.MinIdleConns).
		Dur("dial_timeout", opt.DialTimeout).
		Dur("read_timeout", opt.ReadTimeout).
		Int("max_retries", opt.MaxRetries).
		Msg("Redis client initialized")
	return client, nil
}
