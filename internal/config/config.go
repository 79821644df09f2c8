// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the server.
type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"5000"`
	// DBPath is the SQLite database file.
	DBPath string `env:"DB_PATH" envDefault:"finance.db"`
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string `env:"JWT_SECRET" envDefault:"your-super-secret-jwt-key-here"`
	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (Config, error) {
	// A missing .env file is fine; explicit env vars are enough.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
