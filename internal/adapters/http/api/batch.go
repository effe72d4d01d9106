// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/writing"
	"github.com/linguaport/quickscore/internal/engine"
)

// BatchHandler handles batch scoring requests.
type BatchHandler struct {
	deps Dependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps Dependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// batchRequest mirrors the OpenAPI schema for POST /score/batch.
type batchRequest struct {
	Attempts []scoreRequest `json:"attempts"`
}

// batchOutcome is one per-attempt result in a batch response.
type batchOutcome struct {
	AttemptID      string         `json:"attempt_id"`
	P              float64        `json:"p,omitempty"`
	Route          string         `json:"route,omitempty"`
	EstimatedLevel string         `json:"estimated_level,omitempty"`
	Error          *errorResponse `json:"error,omitempty"`
}

type batchResponse struct {
	Outcomes []batchOutcome `json:"outcomes"`
}

// HandlePostBatch handles POST /score/batch requests. The whole batch
// is rejected when it exceeds the engine bound; individual attempt
// failures are reported per outcome.
func (h *BatchHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Attempts) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	batch := make([]engine.Attempt, len(req.Attempts))
	for i, a := range req.Attempts {
		id := a.AttemptID
		if id == "" {
			id = uuid.NewString()
		}
		// Normalize the skill tag; an unknown tag stays as-is and is
		// reported per outcome by the engine.
		if skill, err := model.ParseSkill(string(a.Item.Skill)); err == nil {
			a.Item.Skill = skill
		}
		batch[i] = engine.Attempt{
			ID:          id,
			CandidateID: a.CandidateID,
			Item:        a.Item,
			Response:    a.Response,
		}
	}

	outcomes, err := h.deps.ScoreBatch(r.Context(), batch)
	if err != nil {
		if errors.Is(err, engine.ErrBatchTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large", WrapKind(op, ErrBatchTooLarge, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	resp := batchResponse{Outcomes: make([]batchOutcome, len(outcomes))}
	for i, o := range outcomes {
		out := batchOutcome{AttemptID: o.ID}
		if o.Err != nil {
			out.Error = &errorResponse{Code: "scoring_failed", Message: o.Err.Error()}
		} else {
			out.P = o.Result.P
			out.Route = string(o.Result.Route)
			out.EstimatedLevel = string(writing.LevelForScore(o.Result.P))
		}
		resp.Outcomes[i] = out
	}
	writeJSON(w, http.StatusOK, resp)
}
