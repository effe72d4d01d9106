// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/linguaport/quickscore/internal/adapters/repository"
)

// SessionHandler handles session history requests.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

type sessionResponse struct {
	CandidateID string            `json:"candidate_id"`
	Steps       []repository.Step `json:"steps"`
}

// HandleGetSession handles GET /session/{candidate_id} requests.
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /session/
	candidateID := strings.TrimPrefix(r.URL.Path, "/session/")
	if candidateID == "" || strings.Contains(candidateID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	steps, err := h.deps.Session(r.Context(), candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{CandidateID: candidateID, Steps: steps})
}
