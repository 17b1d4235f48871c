// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSecretLen = 16

// Config holds every setting of the server.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/ledger.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// AMQPURL selects the notification sink: empty logs notices instead of publishing them.
	AMQPURL       string        `env:"AMQP_URL"`
	AMQPExchange  string        `env:"AMQP_EXCHANGE" envDefault:"splitledger"`
	AMQPQueue     string        `env:"AMQP_QUEUE" envDefault:"notifications"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Load reads a .env file when present and parses the environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.LogLevel))
	}

	if len(c.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLen))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid AMQP URL: %w", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Errorf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("AMQP exchange name cannot be empty when AMQP URL is provided"))
		}
		if c.AMQPQueue == "" {
			errs = append(errs, errors.New("AMQP queue name cannot be empty when AMQP URL is provided"))
		}
	}
	if c.NotifyTimeout <= 0 {
		errs = append(errs, errors.New("NOTIFY_TIMEOUT must be positive"))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("invalid metrics path %q: must start with /", c.MetricsPath))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
