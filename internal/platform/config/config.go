// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. In development a local
'.env' file is loaded first via 'joho/godotenv'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/hikari/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the Hikari API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), backing refresh-token sessions
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for access-token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// CounterQueueSize bounds the async counter dispatcher's buffer.
	CounterQueueSize int `env:"COUNTER_QUEUE_SIZE" envDefault:"1024"`

	// First-run admin bootstrap credentials, consumed by GET /api/v1/setup
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:"admin@hikari.app"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing .env file is not an error; deployed environments configure the
// process environment directly.
func Load() (*Config, error) {

	// Best-effort .env load for local development
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
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

// AllowedExtraOrigins parses the comma-separated EXTRA_ORIGINS variable
// into exact origins accepted by the CORS middleware in production.
func (c *Config) AllowedExtraOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
