// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AttemptCacheSize bounds the idempotency cache of scored attempts.
	AttemptCacheSize int `koanf:"attempt_cache_size"`

	// SessionShardCount configures the number of session store shards.
	SessionShardCount int `koanf:"session_shard_count"`

	// BatchWorkers sets the number of goroutines for batch scoring.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps POST /score/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// AssumedServerCostMS is the per-call server compute assumed by the
	// savings estimate.
	AssumedServerCostMS int `koanf:"assumed_server_cost_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		AttemptCacheSize:    10_000,
		SessionShardCount:   16,
		BatchWorkers:        runtime.NumCPU() * 2,
		MaxBatchSize:        256,
		AssumedServerCostMS: 250,
	}
}
