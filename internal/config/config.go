// Package config loads process configuration from the environment and the
// shared services.yaml topology file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full environment-driven configuration. Every process loads
// the same shape and uses the sections it needs.
type Config struct {
	Env string `env:"APP_ENV,default=local"`

	Logging struct {
		Level  string `env:"LOG_LEVEL,default=info"`
		Format string `env:"LOG_FORMAT,default=json"`
	}

	Database struct {
		URL string `env:"DATABASE_URL,default="`
	}

	JWT struct {
		Secret string        `env:"JWT_SECRET,default="`
		Expiry time.Duration `env:"JWT_EXPIRY,default=24h"`
	}

	RPC struct {
		Timeout time.Duration `env:"RPC_TIMEOUT,default=10s"`
	}

	Gateway struct {
		AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:5173"`
		// Rate limiting is off unless explicitly enabled; the default
		// surface serves every request it can.
		RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED,default=false"`
		RateLimitPerSec  int  `env:"RATE_LIMIT_PER_SEC,default=50"`
		RateLimitBurst   int  `env:"RATE_LIMIT_BURST,default=100"`
	}

	ServicesFile string `env:"SERVICES_CONFIG,default=config/services.yaml"`
}

// Load reads .env when present, then decodes the environment.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars win either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process mains that cannot continue without config.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// IsProduction reports whether the process runs with production settings.
// It controls the Secure attribute on the identity cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
