package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the HTTP service configuration
type Settings struct {
	ListenAddr      string            `mapstructure:"listen_addr"`
	ReadTimeout     time.Duration     `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration     `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration     `mapstructure:"shutdown_timeout"`
	LogLevel        string            `mapstructure:"log_level"`
	RateLimit       RateLimitSettings `mapstructure:"rate_limit"`
	Cache           CacheSettings     `mapstructure:"cache"`
}

// RateLimitSettings configures the per-client token bucket
type RateLimitSettings struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheSettings selects and configures the result cache
type CacheSettings struct {
	Backend       string        `mapstructure:"backend"` // memory, redis or none
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	ConnectTries  int           `mapstructure:"connect_tries"`
}

const (
	DefaultListenAddr   = ":8080"
	DefaultRateRequests = 60
	DefaultRateWindow   = time.Minute
	DefaultCacheTTL     = time.Hour
	EnvPrefix           = "INVESTCALC"
)

// LoadSettings reads service settings from an optional file, then applies
// INVESTCALC_* environment overrides (nested keys use "_", e.g.
// INVESTCALC_CACHE_BACKEND).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"listen_addr":          DefaultListenAddr,
		"read_timeout":         15 * time.Second,
		"write_timeout":        15 * time.Second,
		"shutdown_timeout":     10 * time.Second,
		"log_level":            "info",
		"rate_limit.requests":  DefaultRateRequests,
		"rate_limit.window":    DefaultRateWindow,
		"cache.backend":        "memory",
		"cache.redis_addr":     "localhost:6379",
		"cache.redis_password": "",
		"cache.redis_db":       0,
		"cache.ttl":            DefaultCacheTTL,
		"cache.connect_tries":  5,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := validateSettings(&s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

func validateSettings(s *Settings) error {
	if s.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if s.RateLimit.Requests <= 0 {
		return errors.New("rate_limit.requests must be positive")
	}
	if s.RateLimit.Window <= 0 {
		return errors.New("rate_limit.window must be positive")
	}
	switch s.Cache.Backend {
	case "memory", "none":
	case "redis":
		if s.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
		if s.Cache.ConnectTries <= 0 {
			return errors.New("cache.connect_tries must be positive")
		}
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'none', got %q", s.Cache.Backend)
	}
	if s.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	return nil
}
