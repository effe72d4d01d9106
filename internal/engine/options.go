package engine

import (
	"github.com/linguaport/quickscore/internal/adapters/repository"
	"github.com/linguaport/quickscore/internal/domain/attempts"
	"github.com/linguaport/quickscore/internal/telemetry"
	"github.com/linguaport/quickscore/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithAttemptCacheSize sets the bound on the attempt result cache.
func WithAttemptCacheSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.cacheSize = size
		}
	}
}

// WithSessionShardCount sets the number of session store shards.
func WithSessionShardCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.shardCount = n
		}
	}
}

// WithBatchWorkers sets the number of goroutines ScoreBatch fans out to.
func WithBatchWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchWorkers = n
		}
	}
}

// WithMaxBatchSize sets the largest batch ScoreBatch accepts.
func WithMaxBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxBatchSize = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAttemptCache injects a prebuilt attempt cache.
func WithAttemptCache(c attempts.Cache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithSessionStore injects a prebuilt session store.
func WithSessionStore(s repository.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.sessions = s
		}
	}
}

// WithTelemetry injects a prebuilt telemetry recorder.
func WithTelemetry(r *telemetry.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}
