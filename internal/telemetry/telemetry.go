// Package telemetry accumulates per-call compute timings and estimates
// how much server compute local scoring saves. The recorder is purely
// observational: nothing here ever feeds back into scoring or routing.
package telemetry

import (
	"sync"
	"time"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/pkg/metrics"
)

// defaultAssumedServerCost is the fixed per-call server compute a remote
// scoring service would spend, used for the savings estimate.
const defaultAssumedServerCost = 250 * time.Millisecond

// entry is one recorded scoring call.
type entry struct {
	skill model.Skill
	d     time.Duration
	at    time.Time
}

// Recorder is an append-only in-memory log of scoring timings, scoped to
// one process lifetime. Appends are mutex-serialized; entry ordering is
// not significant, only the aggregate statistics are.
type Recorder struct {
	mu                sync.Mutex
	entries           []entry
	assumedServerCost time.Duration
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithAssumedServerCost overrides the assumed per-call server compute.
func WithAssumedServerCost(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.assumedServerCost = d
		}
	}
}

// NewRecorder creates a telemetry recorder with default configuration.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		assumedServerCost: defaultAssumedServerCost,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Record appends one scoring timing and mirrors it to the metrics layer.
func (r *Recorder) Record(skill model.Skill, d time.Duration, at time.Time) {
	r.mu.Lock()
	r.entries = append(r.entries, entry{skill: skill, d: d, at: at})
	count := len(r.entries)
	r.mu.Unlock()

	metrics.UpdateTelemetryEntries(count)
	metrics.UpdateServerSavingsPercent(r.EstimatedServerSavings())
}

// Count returns the number of recorded scoring calls.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CountFor returns the number of recorded calls for one skill.
func (r *Recorder) CountFor(skill model.Skill) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.skill == skill {
			n++
		}
	}
	return n
}

// AverageComputeTime returns the mean compute time across all calls,
// zero when nothing has been recorded.
func (r *Recorder) AverageComputeTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return average(r.entries, "")
}

// AverageComputeTimeFor returns the mean compute time for one skill,
// zero when that skill has no recorded calls.
func (r *Recorder) AverageComputeTimeFor(skill model.Skill) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return average(r.entries, skill)
}

// average computes the mean duration, optionally filtered by skill.
// Callers must hold the mutex.
func average(entries []entry, skill model.Skill) time.Duration {
	var total time.Duration
	n := 0
	for _, e := range entries {
		if skill != "" && e.skill != skill {
			continue
		}
		total += e.d
		n++
	}
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

// EstimatedServerSavings returns the estimated percentage reduction in
// server compute from scoring locally:
//
//	(assumed*N - sum(compute)) / (assumed*N) * 100
//
// Zero when nothing has been recorded.
func (r *Recorder) EstimatedServerSavings() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if n == 0 {
		return 0
	}

	var spent time.Duration
	for _, e := range r.entries {
		spent += e.d
	}

	assumed := r.assumedServerCost * time.Duration(n)
	saved := float64(assumed-spent) / float64(assumed) * 100
	if saved < 0 {
		return 0
	}
	return saved
}

// Snapshot returns the aggregate statistics for monitoring endpoints.
func (r *Recorder) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"scoredTotal":          r.Count(),
		"scoredSpeaking":       r.CountFor(model.SkillSpeaking),
		"scoredWriting":        r.CountFor(model.SkillWriting),
		"avgComputeMs":         float64(r.AverageComputeTime().Microseconds()) / 1000,
		"avgComputeSpeakingMs": float64(r.AverageComputeTimeFor(model.SkillSpeaking).Microseconds()) / 1000,
		"avgComputeWritingMs":  float64(r.AverageComputeTimeFor(model.SkillWriting).Microseconds()) / 1000,
		"serverSavingsPercent": r.EstimatedServerSavings(),
	}
}
