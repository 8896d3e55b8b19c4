package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret is only accepted outside production.
const DefaultSessionSecret = "default-session-secret-change-in-production-min-32-chars"

type BackendConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

type SessionConfig struct {
	Secret     string `env:"SECRET"`
	CookieName string `env:"COOKIE_NAME" envDefault:"claims_session"`
	MaxAge     int    `env:"MAX_AGE" envDefault:"86400"`
	Secure     bool   `env:"SECURE" envDefault:"false"`
}

type AuthConfig struct {
	// AdminRole is the authority label that, when first in the roles claim, grants admin.
	AdminRole      string        `env:"ADMIN_ROLE" envDefault:"ROLE_ADMIN"`
	DecodeCacheTTL time.Duration `env:"DECODE_CACHE_TTL" envDefault:"5m"`
}

type ObservabilityConfig struct {
	ServiceName  string `env:"SERVICE_NAME" envDefault:"claims-templui"`
	MetricsAddr  string `env:"METRICS_ADDR" envDefault:":9092"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT" envDefault:"otel-collector:4318"`
	PprofAddr    string `env:"PPROF_ADDR" envDefault:":6060"`
	EnablePprof  bool   `env:"ENABLE_PPROF" envDefault:"false"`
}

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8091"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	Backend       BackendConfig       `envPrefix:"BACKEND_"`
	Session       SessionConfig       `envPrefix:"SESSION_"`
	Auth          AuthConfig          `envPrefix:"AUTH_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret reports whether the session cookie keys derive from the built-in secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Session.Secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required in production")
		}
		cfg.Session.Secret = DefaultSessionSecret
	}
	if len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = 60 * time.Second
	}
	if cfg.Auth.AdminRole == "" {
		cfg.Auth.AdminRole = "ROLE_ADMIN"
	}

	return cfg, nil
}
