// Package engine is the scoring façade: it dispatches responses to the
// per-skill scorers, measures compute time, and feeds the attempt
// cache, session store, and telemetry recorder. It implements the
// dependencies required by the HTTP API.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/linguaport/quickscore/internal/adapters/repository"
	"github.com/linguaport/quickscore/internal/domain/attempts"
	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/speaking"
	"github.com/linguaport/quickscore/internal/domain/writing"
	"github.com/linguaport/quickscore/internal/telemetry"
	"github.com/linguaport/quickscore/pkg/logger"
	"github.com/linguaport/quickscore/pkg/metrics"
)

// Engine scores responses and tracks session state for the placement
// test orchestrator.
type Engine struct {
	mu sync.RWMutex

	// Core components
	cache    attempts.Cache
	sessions repository.Store
	recorder *telemetry.Recorder

	// Configuration
	cacheSize    int
	shardCount   int
	batchWorkers int
	maxBatchSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		cacheSize:    10000,
		shardCount:   16,
		batchWorkers: 4,
		maxBatchSize: 256,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start initializes the engine components.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}

	if e.logger == nil {
		e.logger = logger.Get()
	}
	if e.cache == nil {
		e.cache = attempts.NewInMemoryCache(attempts.WithMaxSize(e.cacheSize))
	}
	if e.sessions == nil {
		e.sessions = repository.NewMemStore(repository.WithShardCount(e.shardCount))
	}
	if e.recorder == nil {
		e.recorder = telemetry.NewRecorder()
	}

	e.started = true
	e.logger.Info(ctx, "scoring engine started",
		logger.Int("cacheSize", e.cacheSize),
		logger.Int("sessionShards", e.shardCount),
		logger.Int("batchWorkers", e.batchWorkers),
	)
	return nil
}

// Stop marks the engine stopped. All state is in-memory, so there is
// nothing to flush.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	e.started = false
	e.logger.Info(context.Background(), "scoring engine stopped")
}

// ValidateResponse reports whether the response is structurally
// scorable for the item's skill. An unsupported skill is an error,
// not a false.
func (e *Engine) ValidateResponse(_ context.Context, item model.Item, resp model.Response) (bool, error) {
	switch item.Skill {
	case model.SkillSpeaking:
		ok := speaking.Validate(item, resp)
		if !ok {
			metrics.RecordValidationFailure(string(item.Skill))
		}
		return ok, nil
	case model.SkillWriting:
		ok := writing.Validate(item, resp)
		if !ok {
			metrics.RecordValidationFailure(string(item.Skill))
		}
		return ok, nil
	default:
		return false, ErrUnsupportedSkill
	}
}

// ScoreResponse scores one response, measuring compute time and
// recording it in telemetry. Pure dispatch: no cache or session state
// is touched.
func (e *Engine) ScoreResponse(ctx context.Context, item model.Item, resp model.Response) (model.Result, error) {
	start := time.Now()

	var result model.Result
	switch item.Skill {
	case model.SkillSpeaking:
		result = speaking.Score(item, resp)
	case model.SkillWriting:
		result = writing.Score(item, resp)
	default:
		metrics.RecordScoringError()
		metrics.RecordErrorByComponent("engine", "unsupported_skill")
		return model.Result{}, ErrUnsupportedSkill
	}

	elapsed := time.Since(start)
	result.ComputeTime = elapsed

	if e.recorder != nil {
		e.recorder.Record(item.Skill, elapsed, start)
	}
	metrics.RecordResponseScored(string(item.Skill))
	metrics.RecordRouteDecided(string(result.Route))
	metrics.RecordScoringLatency(string(item.Skill), float64(elapsed.Microseconds())/1000)

	if e.logger != nil {
		e.logger.Debug(ctx, "scored response",
			logger.String("skill", string(item.Skill)),
			logger.Float64("p", result.P),
			logger.String("route", string(result.Route)),
			logger.Duration("compute", elapsed),
		)
	}
	return result, nil
}

// ScoreAttempt scores one attempt idempotently: a repeated attempt ID
// returns the cached result without rescoring, and a fresh score is
// appended to the candidate's session. The second return reports
// whether the result came from the cache.
func (e *Engine) ScoreAttempt(ctx context.Context, attemptID, candidateID string, item model.Item, resp model.Response) (model.Result, bool, error) {
	if attemptID != "" {
		if cached, ok := e.cache.Lookup(ctx, attemptID); ok {
			metrics.RecordCachedResult()
			return cached, true, nil
		}
	}

	result, err := e.ScoreResponse(ctx, item, resp)
	if err != nil {
		return model.Result{}, false, err
	}

	if attemptID != "" {
		e.cache.Remember(ctx, attemptID, result)
	}

	if candidateID != "" {
		step := repository.Step{
			AttemptID: attemptID,
			Skill:     item.Skill,
			Stage:     item.Stage,
			P:         result.P,
			Route:     result.Route,
			At:        time.Now(),
			Compute:   result.ComputeTime,
		}
		if err := e.sessions.Append(ctx, candidateID, step); err != nil {
			e.logger.Warn(ctx, "failed to append session step",
				logger.String("candidateID", candidateID),
				logger.Error(err),
			)
		} else {
			metrics.RecordSessionStep()
			metrics.UpdateSessionsTracked(e.sessions.Count(ctx))
		}
	}

	return result, false, nil
}

// Session returns the candidate's scored steps in order.
func (e *Engine) Session(ctx context.Context, candidateID string) ([]repository.Step, error) {
	return e.sessions.Session(ctx, candidateID)
}

// ForgetAttempt drops an attempt from the cache so it can be rescored.
func (e *Engine) ForgetAttempt(ctx context.Context, attemptID string) {
	e.cache.Forget(ctx, attemptID)
}

// Telemetry exposes the recorder for stats endpoints.
func (e *Engine) Telemetry() *telemetry.Recorder {
	return e.recorder
}

// GetStats returns engine statistics for monitoring.
func (e *Engine) GetStats() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      e.started,
		"batchWorkers": e.batchWorkers,
		"maxBatchSize": e.maxBatchSize,
	}
	if e.cache != nil {
		stats["cachedAttempts"] = e.cache.Size()
	}
	if e.sessions != nil {
		stats["trackedCandidates"] = e.sessions.Count(context.Background())
	}
	if e.recorder != nil {
		for k, v := range e.recorder.Snapshot() {
			stats[k] = v
		}
	}
	return stats
}

// MaxBatchSize returns the largest batch ScoreBatch accepts.
func (e *Engine) MaxBatchSize() int {
	return e.maxBatchSize
}
