// Package config loads and validates service configuration from the environment
// and an optional .env file.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr         string `mapstructure:"ADDR"`
	Env          string `mapstructure:"APP_ENV"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	CookieSecure bool   `mapstructure:"COOKIE_SECURE"`
}

// Session configures the browser cookie and server-side session layer.
type Session struct {
	// SigningKey signs the session cookie (HS256).
	SigningKey string `mapstructure:"SESSION_SIGNING_KEY"`
	// TTL bounds the cookie and every durable session entry.
	TTL time.Duration `mapstructure:"SESSION_TTL"`
	// SealKey derives the key that encrypts tokens at rest.
	SealKey string `mapstructure:"TOKEN_SEAL_KEY"`
	// RevalidateInterval controls how long the provider liveness check on a
	// session is trusted before it is repeated.
	RevalidateInterval time.Duration `mapstructure:"PROFILE_REVALIDATE_INTERVAL"`
}

// Backend is the remote REST API.
type Backend struct {
	URL     string        `mapstructure:"BACKEND_URL"`
	Timeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
}

// Identity is the Kratos public API. Self-service flows never need the admin
// API.
type Identity struct {
	PublicURL string `mapstructure:"KRATOS_PUBLIC_URL"`
}

// Payments configures the card processor.
type Payments struct {
	SecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	// APIURL overrides the processor endpoint (stripe-mock in development).
	APIURL string `mapstructure:"STRIPE_API_URL"`
}

// RedisConfig configures the durable session store and the change relay.
type RedisConfig struct {
	URL          string        `mapstructure:"REDIS_URL"`
	PoolSize     int           `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConns int           `mapstructure:"REDIS_MIN_IDLE_CONNS"`
	DialTimeout  time.Duration `mapstructure:"REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `mapstructure:"REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"REDIS_WRITE_TIMEOUT"`
}

// Postgres is used as the durable session store when Redis is not configured.
type Postgres struct {
	URL string `mapstructure:"DATABASE_URL"`
}

// Audit configures the Kafka audit trail. Empty brokers falls back to logs.
type Audit struct {
	Brokers string `mapstructure:"KAFKA_BROKERS"`
	Topic   string `mapstructure:"AUDIT_TOPIC"`
}

// RateLimit throttles login and registration per client IP.
type RateLimit struct {
	PerSecond float64 `mapstructure:"LOGIN_RATE_PER_SECOND"`
	Burst     int     `mapstructure:"LOGIN_BURST"`
}

// Config is the full service configuration.
type Config struct {
	Server    Server      `mapstructure:",squash"`
	Session   Session     `mapstructure:",squash"`
	Backend   Backend     `mapstructure:",squash"`
	Identity  Identity    `mapstructure:",squash"`
	Payments  Payments    `mapstructure:",squash"`
	Redis     RedisConfig `mapstructure:",squash"`
	Postgres  Postgres    `mapstructure:",squash"`
	Audit     Audit       `mapstructure:",squash"`
	RateLimit RateLimit   `mapstructure:",squash"`
}

const devSigningKey = "dev-session-key-change-in-production"

var defaults = map[string]any{
	"ADDR":                        ":8080",
	"APP_ENV":                     "development",
	"LOG_LEVEL":                   "info",
	"COOKIE_SECURE":               false,
	"SESSION_SIGNING_KEY":         devSigningKey,
	"SESSION_TTL":                 "24h",
	"TOKEN_SEAL_KEY":              devSigningKey,
	"PROFILE_REVALIDATE_INTERVAL": "5m",
	"BACKEND_URL":                 "http://localhost:5000",
	"BACKEND_TIMEOUT":             "15s",
	"KRATOS_PUBLIC_URL":           "http://localhost:4433",
	"STRIPE_SECRET_KEY":           "",
	"STRIPE_API_URL":              "",
	"REDIS_URL":                   "",
	"REDIS_POOL_SIZE":             10,
	"REDIS_MIN_IDLE_CONNS":        2,
	"REDIS_DIAL_TIMEOUT":          "5s",
	"REDIS_READ_TIMEOUT":          "3s",
	"REDIS_WRITE_TIMEOUT":         "3s",
	"DATABASE_URL":                "",
	"KAFKA_BROKERS":               "",
	"AUDIT_TOPIC":                 "assetdesk.audit",
	"LOGIN_RATE_PER_SECOND":       1.0,
	"LOGIN_BURST":                 5,
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: ADDR must be set")
	}
	if c.Backend.URL == "" {
		return errors.New("config: BACKEND_URL must be set")
	}
	if c.Identity.PublicURL == "" {
		return errors.New("config: KRATOS_PUBLIC_URL must be set")
	}
	if c.Session.TTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.IsProduction() {
		if c.Session.SigningKey == devSigningKey || c.Session.SealKey == devSigningKey {
			return errors.New("config: SESSION_SIGNING_KEY and TOKEN_SEAL_KEY must be overridden when APP_ENV=production")
		}
		if !c.Server.CookieSecure {
			return errors.New("config: COOKIE_SECURE must be true when APP_ENV=production")
		}
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("config: LOGIN_RATE_PER_SECOND and LOGIN_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// KafkaBrokers returns broker addresses from the comma-separated setting.
func (c *Config) KafkaBrokers() []string {
	if c == nil || c.Audit.Brokers == "" {
		return nil
	}
	parts := strings.Split(c.Audit.Brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
