// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/linguaport/quickscore/internal/domain/writing"
	"github.com/linguaport/quickscore/internal/engine"
)

// ScoreHandler handles scoring requests.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandlePostScore handles POST /score requests. A missing attempt_id is
// assigned a fresh one, so the orchestrator can retry with the returned
// ID and get the cached result.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	attemptID := req.AttemptID
	if attemptID == "" {
		attemptID = uuid.NewString()
	}

	result, cached, err := h.deps.ScoreAttempt(r.Context(), attemptID, req.CandidateID, req.Item, req.Response)
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedSkill) {
			writeError(w, http.StatusBadRequest, "unsupported_skill", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		AttemptID:      attemptID,
		P:              result.P,
		Route:          result.Route,
		Features:       result.Features,
		EstimatedLevel: writing.LevelForScore(result.P),
		Justification:  writing.Justification(result.P, result.Features),
		ComputeMs:      float64(result.ComputeTime.Microseconds()) / 1000,
		Cached:         cached,
	})
}
