// Package config loads runtime settings from the environment. Nothing in
// the rest of the tree reads the environment directly; components receive
// explicit configuration at construction.
package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultPort     = "8080"
	defaultIssuer   = "storefront"
	defaultTokenTTL = time.Hour
)

// Config holds runtime settings for the storefront API.
//
// Fields:
//   - Addr: HTTP bind address.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store
//     with seeded demo data.
//   - SigningKeyEnv: name of the env var holding the base64 HMAC key.
//   - TokenIssuer / TokenTTL: token claims configuration.
type Config struct {
	Addr          string
	DatabaseDSN   string
	SigningKeyEnv string
	TokenIssuer   string
	TokenTTL      time.Duration
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:          fmt.Sprintf(":%s", envOr("PORT", defaultPort)),
		DatabaseDSN:   os.Getenv("DATABASE_URL"),
		SigningKeyEnv: "SIGNING_KEY_BASE64",
		TokenIssuer:   envOr("TOKEN_ISSUER", defaultIssuer),
		TokenTTL:      defaultTokenTTL,
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
