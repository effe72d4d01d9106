package writing

import (
	"fmt"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/textstat"
)

// levelBoundary marks the lower bound of a CEFR band on the [0,1] score
// range. The boundaries partition the interval without gaps or overlaps;
// evaluation walks them top-down.
type levelBoundary struct {
	Min   float64
	Level model.Level
}

// levelBoundaries, highest band first. A1 owns everything below 0.25.
var levelBoundaries = []levelBoundary{
	{Min: 0.85, Level: model.LevelC2},
	{Min: 0.70, Level: model.LevelC1},
	{Min: 0.55, Level: model.LevelB2},
	{Min: 0.40, Level: model.LevelB1},
	{Min: 0.25, Level: model.LevelA2},
	{Min: 0.00, Level: model.LevelA1},
}

// LevelForScore maps a performance estimate onto the six-band CEFR scale.
// The mapping is monotonic and total over [0,1]; out-of-range input is
// clamped first.
func LevelForScore(p float64) model.Level {
	p = textstat.Clamp01(p)
	for _, b := range levelBoundaries {
		if p >= b.Min {
			return b.Level
		}
	}
	return model.LevelA1
}

// featureLabels names the sub-score features in the order used to break
// ties, keeping justifications deterministic.
var featureLabels = []struct {
	key   string
	label string
}{
	{key: "fluency", label: "fluency"},
	{key: "length", label: "length control"},
	{key: "lexical", label: "vocabulary range"},
	{key: "grammar", label: "grammatical accuracy"},
	{key: "task", label: "task response"},
}

// Justification produces a short, deterministic explanation of a score
// from its already-computed features. It performs no new analysis and
// never fails; degenerate feature sets get a degenerate explanation.
func Justification(p float64, features map[string]float64) string {
	if features["transcriptMissing"] == 1 || features["textMissing"] == 1 {
		return "No response content was captured, so the attempt scored at the floor."
	}
	if features["tooShort"] == 1 {
		return fmt.Sprintf("The response was too short to assess reliably (%d words).",
			int(features["wordCount"]))
	}

	type scored struct {
		label string
		value float64
	}
	var present []scored
	for _, f := range featureLabels {
		if v, ok := features[f.key]; ok {
			present = append(present, scored{label: f.label, value: v})
		}
	}
	if len(present) == 0 {
		return fmt.Sprintf("Estimated level %s.", LevelForScore(p))
	}

	// Stable selection: sort is not needed, first-max/first-min over the
	// fixed label order keeps ties deterministic.
	best, worst := present[0], present[0]
	for _, s := range present[1:] {
		if s.value > best.value {
			best = s
		}
		if s.value < worst.value {
			worst = s
		}
	}

	level := LevelForScore(p)
	if best.label == worst.label || best.value == worst.value {
		return fmt.Sprintf("Estimated level %s: performance was even across all assessed areas.", level)
	}
	return fmt.Sprintf("Estimated level %s: strongest in %s, most limited by %s.",
		level, best.label, worst.label)
}

// Boundaries returns the band lower bounds in ascending order, exposed so
// callers and tests can audit the partition.
func Boundaries() map[model.Level]float64 {
	out := make(map[model.Level]float64, len(levelBoundaries))
	for _, b := range levelBoundaries {
		out[b.Level] = b.Min
	}
	return out
}
