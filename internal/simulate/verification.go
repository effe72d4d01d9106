package simulate

import (
	"context"
	"fmt"

	"github.com/linguaport/quickscore/pkg/logger"
)

// Routing thresholds mirrored from the scoring engine.
const (
	upThreshold   = 0.75
	downThreshold = 0.45
)

// verifyResults checks the scoring invariants on every returned result:
// p stays in [0,1], the route agrees with the thresholds, every feature
// is finite and bounded, and a level estimate is always present.
func verifyResults(ctx context.Context, results []ScoreResult, stats *Stats) error {
	logger.Get().Info(ctx, "verifying scoring invariants", logger.Int("results", len(results)))

	for _, r := range results {
		for _, violation := range checkResult(r) {
			stats.Violations++
			logger.Get().Error(ctx, "invariant violation",
				logger.String("attemptID", r.AttemptID),
				logger.String("violation", violation))
		}

		switch r.Route {
		case "up":
			stats.RoutesUp++
		case "down":
			stats.RoutesDown++
		case "stay":
			stats.RoutesStay++
		}
	}

	if stats.Violations > 0 {
		return fmt.Errorf("%d invariant violations detected", stats.Violations)
	}
	logger.Get().Info(ctx, "all invariants hold",
		logger.Int("up", stats.RoutesUp),
		logger.Int("down", stats.RoutesDown),
		logger.Int("stay", stats.RoutesStay))
	return nil
}

// checkResult returns the list of invariant violations in one result.
func checkResult(r ScoreResult) []string {
	var violations []string

	if r.P < 0 || r.P > 1 || r.P != r.P {
		violations = append(violations, fmt.Sprintf("p out of bounds: %v", r.P))
	}

	expected := routeFor(r.P)
	if r.Route != expected {
		violations = append(violations, fmt.Sprintf("route %q does not match p=%v (want %q)", r.Route, r.P, expected))
	}

	if r.EstimatedLevel == "" {
		violations = append(violations, "missing estimated level")
	}

	for name, v := range r.Features {
		// Raw counts and echoes are allowed above 1; sub-scores are not.
		if name == "wordCount" {
			continue
		}
		if v != v || v < 0 || v > 1 {
			violations = append(violations, fmt.Sprintf("feature %s out of bounds: %v", name, v))
		}
	}
	return violations
}

// routeFor mirrors the engine's threshold rule.
func routeFor(p float64) string {
	switch {
	case p >= upThreshold:
		return "up"
	case p < downThreshold:
		return "down"
	default:
		return "stay"
	}
}
