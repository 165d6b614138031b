// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"8000"`

	// Document store (PostgreSQL).
	// DATABASE_URL may be left unset: the API still starts, persistence
	// operations fail per-request, and /test reports the missing config.
	DatabaseURL string `env:"DATABASE_URL"`

	// DATABASE_NAME is the PostgreSQL schema holding the documents table.
	DatabaseName string `env:"DATABASE_NAME" envDefault:"funnel"`

	// Cache (Redis). Optional; unset disables the offer cache and the
	// redirect rate limiter.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Offer cache TTL for the redirect hot path.
	OfferCacheTTL time.Duration `env:"OFFER_CACHE_TTL" envDefault:"5m"`

	// Rate limiting for the redirect endpoint (per client IP).
	// Disabled by default to keep the public redirect behavior unchanged.
	RateLimitRedirectEnabled bool `env:"RATE_LIMIT_REDIRECT_ENABLED" envDefault:"false"`
	RateLimitRedirectRPS     int  `env:"RATE_LIMIT_REDIRECT_RPS" envDefault:"100"`
	RateLimitRedirectBurst   int  `env:"RATE_LIMIT_REDIRECT_BURST" envDefault:"20"`

	// AdminKeyHash is an argon2id PHC hash gating POST /api/admin/offers.
	// Empty leaves the admin endpoint open.
	AdminKeyHash string `env:"ADMIN_KEY_HASH"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AdminAuthEnabled reports whether the admin surface requires a key.
func (c *Config) AdminAuthEnabled() bool {
	return c.AdminKeyHash != ""
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
