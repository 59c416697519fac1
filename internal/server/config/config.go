// Package config loads server settings from command-line flags with
// environment-variable overrides.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avasiliev/punchclock/internal/server/jwt"
)

// Config holds runtime settings for the punchclock server.
type Config struct {
	// Address is the HTTP bind address
	Address string
	// DatabasePath is the SQLite database file path
	DatabasePath string
	// JWTSecret is the HMAC secret for signing tokens (HS256)
	JWTSecret string
	// TokenTTL is the bearer token lifetime
	TokenTTL time.Duration
	// CORSOrigin is the allowed frontend origin; empty disables CORS
	CORSOrigin string
}

// Load builds a Config from flags, then overlays environment variables.
// Call once from main; it uses the process-wide flag set.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Address, "address", ":8080", "HTTP bind address")
	flag.StringVar(&cfg.DatabasePath, "db", "punchclock.db", "Path to SQLite database")
	flag.StringVar(&cfg.JWTSecret, "secret", "", "JWT signing secret")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", jwt.DefaultTTL, "Bearer token lifetime")
	flag.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin")
	flag.Parse()

	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}

	return cfg
}

// Validate checks that startup-fatal settings are present. A missing
// signing secret or database path is a configuration error, never a
// per-request one.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set -secret or JWT_SECRET)")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required (set -db or DATABASE_PATH)")
	}
	return nil
}
