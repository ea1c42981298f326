// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, mail) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Existence Disclosure Modes

// Enumerated behaviors for the forgot-password endpoint. Operators must
// consciously choose the less-secure mode; there is no implicit branch.
const (
	// RevealModeGeneric always answers with the generic "if an account
	// exists..." message. This is the default and the secure choice.
	RevealModeGeneric = "generic-response"

	// RevealMode404 answers 404 when the email is not registered. This leaks
	// account existence and exists only for closed-network deployments that
	// explicitly accept the trade-off.
	RevealMode404 = "reveal-404"
)

// # Configuration Schema

// Config holds all runtime configuration for the Kinora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional: when empty, token revocation falls
	// back to the in-process registry (revocations are lost on restart).
	RedisURL string `env:"REDIS_URL"`

	// Session token signing. When JWTSecret is empty outside production, the
	// documented development secret is used instead.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Password recovery
	FrontendURL         string `env:"FRONTEND_URL"          envDefault:"http://localhost:5173"`
	RevealUserExistence string `env:"REVEAL_USER_EXISTENCE" envDefault:"generic-response"`
	ResetEmailOverride  string `env:"RESET_EMAIL_OVERRIDE"`

	// Outbound email (SMTP). When SMTPHost is empty, outgoing mail is logged
	// instead of sent, which keeps local development self-contained.
	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser  string `env:"SMTP_USER"`
	SMTPPass  string `env:"SMTP_PASS"`
	EmailFrom string `env:"EMAIL_FROM" envDefault:"no-reply@kinora.app"`

	// Feature flags
	AllowDemoLogin bool `env:"ALLOW_DEMO_LOGIN" envDefault:"false"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.RevealUserExistence != RevealModeGeneric && cfg.RevealUserExistence != RevealMode404 {
		return nil, fmt.Errorf("config: REVEAL_USER_EXISTENCE must be %q or %q, got %q",
			RevealModeGeneric, RevealMode404, cfg.RevealUserExistence)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RevealsUserExistence reports whether forgot-password is configured to
// disclose that an email is not registered.
func (c *Config) RevealsUserExistence() bool {
	return c.RevealUserExistence == RevealMode404
}

// SMTPConfigured reports whether an outbound SMTP transport is configured.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}
