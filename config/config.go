package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port              string        `mapstructure:"PORT"`
	Env               string        `mapstructure:"ENV"`
	DBURL             string        `mapstructure:"DB_URL"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	RedisAddress      string        `mapstructure:"REDIS_URL"`
	RedisPoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	RedisMinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	RedisDialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	RedisReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	RedisMaxRetries   int           `mapstructure:"REDIS_MAX_RETRIES"`
	CacheTTL          time.Duration `mapstructure:"CACHE_TTL"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int           `mapstructure:"RATE_LIMIT_BURST"`
	SMTPHost          string        `mapstructure:"SMTP_HOST"`
	SMTPPort          int           `mapstructure:"SMTP_PORT"`
	SMTPUser          string        `mapstructure:"SMTP_USER"`
	SMTPPass          string        `mapstructure:"SMTP_PASS"`
	SMTPFrom          string        `mapstructure:"SMTP_FROM"`
}

var keys = []string{
	"PORT", "ENV",
	"DB_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"REDIS_URL", "REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_MAX_RETRIES",
	"CACHE_TTL", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
}

// Load reads the configuration from a .env file, when present, and the
// environment. Environment variables win.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_OPEN_CONNS", 40)
	v.SetDefault("DB_MAX_IDLE_CONNS", 20)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "30s")
	v.SetDefault("REDIS_READ_TIMEOUT", "10s")
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("SMTP_PORT", 587)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// A missing .env file is fine
	_ = v.ReadInConfig()

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *AppConfig) Validate() error {
	if c.DBURL == "" {
		return errors.New("missing DB_URL environment variable")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	if c.SMTPHost != "" && c.SMTPPort <= 0 {
		return errors.New("SMTP_PORT is required when SMTP_HOST is set")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

// Addr is the listen address of the HTTP server.
func (c *AppConfig) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
