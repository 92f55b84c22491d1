// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to the pools and servers via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Database holds the PostgreSQL connection parameters.
type Database struct {
	Host     string `env:"DATABASE_HOST,required"`
	Port     int    `env:"DATABASE_PORT,required"`
	User     string `env:"DATABASE_USER,required"`
	Password string `env:"DATABASE_PASSWORD,required"`
	Name     string `env:"DATABASE_NAME,required"`

	// SSLMode is forwarded verbatim as the sslmode query parameter.
	SSLMode string `env:"DATABASE_SSLMODE" envDefault:"disable"`

	// MaxConns bounds both the pgx pool and the database/sql handle.
	MaxConns int `env:"DATABASE_MAX_CONNS" envDefault:"50"`
}

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	Database Database

	// MigrateOnStart applies the embedded schema migrations before serving traffic.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`

	// CORSOriginSuffix restricts allowed origins outside development.
	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// Every DATABASE_* connection parameter is mandatory; a missing one aborts startup.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// Lenient defaults applied by [LoadWithDefaults].
const (
	DefaultDatabasePort = 5432
	DefaultDatabaseName = "myapi"
)

// LoadWithDefaults is the tolerant variant of [Load]: DATABASE_PORT and DATABASE_NAME
// fall back to 5432 and "myapi" when unset. Host, user and password stay required.
func LoadWithDefaults() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{
		Environment: env.ToMap(os.Environ()),
	}

	if _, ok := opts.Environment["DATABASE_PORT"]; !ok {
		opts.Environment["DATABASE_PORT"] = strconv.Itoa(DefaultDatabasePort)
	}
	if _, ok := opts.Environment["DATABASE_NAME"]; !ok {
		opts.Environment["DATABASE_NAME"] = DefaultDatabaseName
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOriginSuffix implements middleware.AppConfig.
func (c *Config) AllowedOriginSuffix() string {
	return c.CORSOriginSuffix
}

// # Connection Strings

// URL builds a postgres:// connection URL from the individual parameters.
// User info is escaped so that passwords containing reserved characters survive.
func (d Database) URL() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}

	query := url.Values{}
	if d.SSLMode != "" {
		query.Set("sslmode", d.SSLMode)
	}
	dsn.RawQuery = query.Encode()

	return dsn.String()
}
