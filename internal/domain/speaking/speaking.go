// Package speaking scores spoken responses from a transcript and the
// item's recording-duration bound. Four weighted features: fluency,
// lexical diversity, grammar, and task relevance.
package speaking

import (
	"strings"

	"github.com/linguaport/quickscore/internal/domain/lexicon"
	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/routing"
	"github.com/linguaport/quickscore/internal/domain/textstat"
)

// Feature weights. The four weights sum to 1 so the combined score stays
// in [0,1] without rescaling.
const (
	weightFluency = 0.30
	weightLexical = 0.25
	weightGrammar = 0.25
	weightTask    = 0.20
)

// minScorableWords is the short-circuit floor: fewer words than this is
// scored as a defined low-confidence result, not analyzed.
const minScorableWords = 10

// shortResponseScore is the estimate assigned to a too-short transcript.
const shortResponseScore = 0.1

// RangeTier awards Score when the value falls inside [Lo, Hi].
type RangeTier struct {
	Lo    float64
	Hi    float64
	Score float64
}

// WPMTiers maps words-per-minute to a fluency band, evaluated top-down.
// The bands are deliberately non-linear: WPM far outside conversational
// range is evidence of transcription failure, not graded fluency.
var WPMTiers = []RangeTier{
	{Lo: 110, Hi: 170, Score: 1.0},
	{Lo: 80, Hi: 200, Score: 0.7},
	{Lo: 60, Hi: 220, Score: 0.4},
}

// wpmFloor is the band for WPM outside every tier, and for degenerate
// durations that make WPM incomputable.
const wpmFloor = 0.1

// PauseBand maps the filled-pause ratio to a fluency band.
var PauseBand = textstat.DensityBand{
	Tiers: []textstat.DensityTier{
		{Max: 0.1, Score: 1.0},
		{Max: 0.2, Score: 0.6},
	},
	Floor: 0.3,
}

// filledPauses lists hesitation markers counted against fluency.
// "you know" is matched as a phrase, the rest as single tokens.
var filledPauses = []string{"um", "uh", "er", "ah", "like"}

// Validate reports whether the response is structurally scorable:
// a transcript that is non-empty after trimming.
func Validate(_ model.Item, resp model.Response) bool {
	return strings.TrimSpace(resp.Transcript) != ""
}

// Score computes the quickscore result for a spoken response. It is a
// pure function of the transcript and the item's recording bound; every
// degenerate input resolves to a defined low score rather than an error.
func Score(item model.Item, resp model.Response) model.Result {
	transcript := strings.TrimSpace(resp.Transcript)
	if transcript == "" {
		return model.Result{
			P:        0,
			Route:    routing.FromScore(0),
			Features: map[string]float64{"transcriptMissing": 1},
		}
	}

	words := textstat.Words(transcript)
	wordCount := len(words)
	if wordCount < minScorableWords {
		return model.Result{
			P:     shortResponseScore,
			Route: routing.FromScore(shortResponseScore),
			Features: map[string]float64{
				"tooShort":  1,
				"wordCount": float64(wordCount),
			},
		}
	}

	fluency := fluencyScore(item, transcript, words)
	lexical := lexicalScore(words)
	grammar := textstat.GrammarScore(transcript)
	task := taskScore(item, transcript)

	p := textstat.Clamp01(weightFluency*fluency +
		weightLexical*lexical +
		weightGrammar*grammar +
		weightTask*task)

	return model.Result{
		P:     p,
		Route: routing.FromScore(p),
		Features: map[string]float64{
			"fluency":    fluency,
			"lexical":    lexical,
			"grammar":    grammar,
			"task":       task,
			"wordCount":  float64(wordCount),
			"confidence": resp.Confidence,
		},
	}
}

// fluencyScore averages the WPM band and the filled-pause band.
func fluencyScore(item model.Item, transcript string, words []string) float64 {
	wpmScore := wpmFloor
	if item.Speaking != nil && item.Speaking.RecordSeconds > 0 {
		wpm := float64(len(words)) / float64(item.Speaking.RecordSeconds) * 60
		wpmScore = evalWPM(wpm)
	}

	pauseScore := PauseBand.Eval(pauseRatio(transcript, words))
	return (wpmScore + pauseScore) / 2
}

// evalWPM walks the range tiers top-down and falls back to the floor.
func evalWPM(wpm float64) float64 {
	for _, t := range WPMTiers {
		if wpm >= t.Lo && wpm <= t.Hi {
			return t.Score
		}
	}
	return wpmFloor
}

// pauseRatio counts filled-pause markers as a fraction of total words.
func pauseRatio(transcript string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	count := 0
	for _, w := range words {
		n := lexicon.Normalize(w)
		for _, p := range filledPauses {
			if n == p {
				count++
				break
			}
		}
	}
	count += strings.Count(strings.ToLower(transcript), "you know")
	return float64(count) / float64(len(words))
}

// lexicalScore averages the type-token-ratio band and the
// advanced-vocabulary band.
func lexicalScore(words []string) float64 {
	ttr := textstat.TTRBand.Eval(textstat.TypeTokenRatio(words))
	adv := textstat.AdvancedVocabBand.Eval(textstat.AdvancedVocabRatio(words))
	return (ttr + adv) / 2
}

// defaultRelevance applies when the prompt yields no extractable keywords.
const defaultRelevance = 0.5

// taskScore averages the discourse-marker score and the prompt-keyword
// overlap ratio.
func taskScore(item model.Item, transcript string) float64 {
	marker := textstat.DiscourseMarkerScore(transcript)

	var keywords []string
	if item.Speaking != nil {
		keywords = textstat.PromptKeywords(item.Speaking.Prompt)
		for _, k := range item.Speaking.Keywords {
			n := lexicon.Normalize(k)
			if n != "" && !contains(keywords, n) {
				keywords = append(keywords, n)
			}
		}
	}

	relevance, ok := textstat.KeywordOverlap(keywords, transcript)
	if !ok {
		relevance = defaultRelevance
	}
	return (marker + relevance) / 2
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
