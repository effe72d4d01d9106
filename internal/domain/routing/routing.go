// Package routing maps a performance estimate to a stage-transition signal.
package routing

import "github.com/linguaport/quickscore/internal/domain/model"

// Routing thresholds shared by every skill. These are the sole gate
// between a scoring result and the external test-progression logic, so
// they are fixed constants, never recomputed from mutable state.
const (
	// UpThreshold routes the candidate to a harder item at or above it.
	UpThreshold = 0.75
	// DownThreshold routes the candidate to an easier item below it.
	DownThreshold = 0.45
)

// FromScore derives the routing decision from a performance estimate.
// It is pure and total over [0,1].
func FromScore(p float64) model.Route {
	switch {
	case p >= UpThreshold:
		return model.RouteUp
	case p < DownThreshold:
		return model.RouteDown
	default:
		return model.RouteStay
	}
}
