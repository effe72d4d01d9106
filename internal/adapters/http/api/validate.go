// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linguaport/quickscore/internal/engine"
)

// ValidateHandler handles pre-scoring validation requests.
type ValidateHandler struct {
	deps Dependencies
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(deps Dependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

type validateResponse struct {
	Scorable bool `json:"scorable"`
}

// HandlePostValidate handles POST /validate requests. It reports
// structural scorability without scoring and without touching any state.
func (h *ValidateHandler) HandlePostValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_validate"
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

	ok, err := h.deps.ValidateResponse(r.Context(), req.Item, req.Response)
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedSkill) {
			writeError(w, http.StatusBadRequest, "unsupported_skill", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Scorable: ok})
}
