// Package repository stores per-candidate session history: the ordered
// list of scored attempts the routing decisions were derived from.
package repository

import (
	"context"
	"time"

	"github.com/linguaport/quickscore/internal/domain/model"
)

// Step is one scored attempt in a candidate's session, in the order the
// candidate produced it.
type Step struct {
	AttemptID string        `json:"attempt_id"`
	Skill     model.Skill   `json:"skill"`
	Stage     model.Stage   `json:"stage"`
	P         float64       `json:"p"`
	Route     model.Route   `json:"route"`
	At        time.Time     `json:"at"`
	Compute   time.Duration `json:"compute_time"`
}

// Store persists session steps keyed by candidate ID.
type Store interface {
	// Append adds a step to the end of the candidate's session,
	// creating the session on first use.
	Append(ctx context.Context, candidateID string, step Step) error

	// Session returns the candidate's steps in append order.
	// Returns ErrSessionNotFound for an unknown candidate.
	Session(ctx context.Context, candidateID string) ([]Step, error)

	// Count returns the number of tracked candidates.
	Count(ctx context.Context) int
}
