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

  - Immutability: once loaded, configuration is read-only.
  - DI-friendly: passed to every constructor explicitly, never read globally.
  - Twelve-factor: all tunables live in the environment.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the indexing service.
type Config struct {
	// Server settings (admin/health HTTP surface only — no public API).
	AdminPort   string `env:"ADMIN_PORT"   envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational source of truth.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the bookkeeping migrations.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Resume-cursor store for the bulk reindex driver.
	RedisURL string `env:"REDIS_URL,required"`

	// Message broker (NATS JetStream) carrying index/delete/retry/failed subjects.
	NATSURL           string `env:"NATS_URL"            envDefault:"nats://127.0.0.1:4222"`
	NATSStreamName    string `env:"NATS_STREAM_NAME"    envDefault:"SEARCH"`
	NATSConsumerName  string `env:"NATS_CONSUMER_NAME"  envDefault:"sir-indexer"`
	NATSMaxRetries    int    `env:"NATS_MAX_RETRIES"    envDefault:"4"`
	NATSAckWaitSecs   int    `env:"NATS_ACK_WAIT_SECS"  envDefault:"30"`

	// Bulk reindex driver tuning.
	ReindexBatchSize   int `env:"REINDEX_BATCH_SIZE"   envDefault:"500"`
	ReindexConcurrency int `env:"REINDEX_CONCURRENCY"  envDefault:"4"`
}

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

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
