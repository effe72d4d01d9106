// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/writing"
)

// LevelsHandler handles CEFR band lookups.
type LevelsHandler struct{}

// NewLevelsHandler creates a new levels handler.
func NewLevelsHandler() *LevelsHandler {
	return &LevelsHandler{}
}

type levelsResponse struct {
	Levels     []model.Level           `json:"levels"`
	Boundaries map[model.Level]float64 `json:"boundaries"`
}

type levelEstimateResponse struct {
	P     float64     `json:"p"`
	Level model.Level `json:"level"`
}

// HandleGetLevels handles GET /levels requests. With a p query
// parameter it maps the score to a band; without one it lists the
// bands and their score boundaries.
func (h *LevelsHandler) HandleGetLevels(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_levels"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := r.URL.Query().Get("p")
	if raw == "" {
		writeJSON(w, http.StatusOK, levelsResponse{
			Levels:     model.Levels,
			Boundaries: writing.Boundaries(),
		})
		return
	}

	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("p must be a number")))
		return
	}
	writeJSON(w, http.StatusOK, levelEstimateResponse{
		P:     p,
		Level: writing.LevelForScore(p),
	})
}
