// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/linguaport/quickscore/internal/adapters/repository"
	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/engine"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ValidateResponse reports structural scorability without scoring.
	ValidateResponse(ctx context.Context, item model.Item, resp model.Response) (bool, error)

	// ScoreAttempt scores idempotently by attempt ID and tracks the
	// candidate's session.
	ScoreAttempt(ctx context.Context, attemptID, candidateID string, item model.Item, resp model.Response) (model.Result, bool, error)

	// ScoreBatch scores a batch concurrently, preserving input order.
	ScoreBatch(ctx context.Context, batch []engine.Attempt) ([]engine.Outcome, error)

	// Session returns a candidate's scored steps in order.
	Session(ctx context.Context, candidateID string) ([]repository.Step, error)

	// MaxBatchSize reports the largest accepted batch.
	MaxBatchSize() int
}

// Server wires HTTP routes for the scoring API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	scoreHandler     *ScoreHandler
	validateHandler  *ValidateHandler
	batchHandler     *BatchHandler
	levelsHandler    *LevelsHandler
	sessionHandler   *SessionHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		scoreHandler:     NewScoreHandler(deps),
		validateHandler:  NewValidateHandler(deps),
		batchHandler:     NewBatchHandler(deps),
		levelsHandler:    NewLevelsHandler(),
		sessionHandler:   NewSessionHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score/batch", MetricsMiddleware(s.batchHandler.HandlePostBatch, "score_batch"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/validate", MetricsMiddleware(s.validateHandler.HandlePostValidate, "validate"))
	mux.HandleFunc("/levels", MetricsMiddleware(s.levelsHandler.HandleGetLevels, "levels"))
	mux.HandleFunc("/session/", MetricsMiddleware(s.sessionHandler.HandleGetSession, "session"))
}

// scoreRequest mirrors the OpenAPI schema for POST /score and /validate.
type scoreRequest struct {
	AttemptID   string         `json:"attempt_id,omitempty"`
	CandidateID string         `json:"candidate_id,omitempty"`
	Item        model.Item     `json:"item"`
	Response    model.Response `json:"response"`
}

// validate checks the request shape and normalizes the skill tag in
// place so the engine dispatches on the same value validation accepted.
func (s *scoreRequest) validate() error {
	if strings.TrimSpace(string(s.Item.Skill)) == "" {
		return errors.New("missing item.skill")
	}
	skill, err := model.ParseSkill(string(s.Item.Skill))
	if err != nil {
		return err
	}
	s.Item.Skill = skill
	return nil
}

// scoreResponse mirrors the OpenAPI schema for scoring results.
type scoreResponse struct {
	AttemptID      string             `json:"attempt_id"`
	P              float64            `json:"p"`
	Route          model.Route        `json:"route"`
	Features       map[string]float64 `json:"features"`
	EstimatedLevel model.Level        `json:"estimated_level"`
	Justification  string             `json:"justification"`
	ComputeMs      float64            `json:"compute_ms"`
	Cached         bool               `json:"cached"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
