// Package writing scores written responses and maps scores onto the CEFR
// band scale. Four weighted features: length adequacy, lexical diversity,
// grammar, and task relevance.
package writing

import (
	"strings"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/routing"
	"github.com/linguaport/quickscore/internal/domain/textstat"
)

// Feature weights. Length adequacy substitutes for the speaking fluency
// dimension at the same weight; the four weights sum to 1.
const (
	weightLength  = 0.30
	weightLexical = 0.25
	weightGrammar = 0.25
	weightTask    = 0.20
)

// minScorableWords is the short-circuit floor for written text.
const minScorableWords = 10

// shortResponseScore is the estimate assigned to a too-short text.
const shortResponseScore = 0.1

// Length-adequacy tiers relative to the item's word-count bounds.
// Tunable constants rather than magic numbers; chosen conservatively so
// a near-miss on the minimum is penalized gently and a severe miss hard.
const (
	lengthNearMinRatio  = 0.8 // >= 80% of the minimum
	lengthHalfMinRatio  = 0.5 // >= 50% of the minimum
	lengthOverMaxRatio  = 1.2 // <= 120% of the maximum
	lengthFullScore     = 1.0
	lengthNearMinScore  = 0.7
	lengthHalfMinScore  = 0.4
	lengthFarShortScore = 0.1
	lengthSlightlyOver  = 0.8
	lengthFarOverScore  = 0.6
)

// defaultRelevance applies when the prompt yields no extractable keywords.
const defaultRelevance = 0.5

// Validate reports whether the response is structurally scorable: text
// that is non-empty after trimming. Word-count bounds are advisory for
// scoring quality, not validity.
func Validate(_ model.Item, resp model.Response) bool {
	return strings.TrimSpace(resp.Text) != ""
}

// Score computes the quickscore result for a written response.
func Score(item model.Item, resp model.Response) model.Result {
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return model.Result{
			P:        0,
			Route:    routing.FromScore(0),
			Features: map[string]float64{"textMissing": 1},
		}
	}

	words := textstat.Words(text)
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

	var minWords, maxWords int
	var prompt string
	if item.Writing != nil {
		minWords, maxWords = item.Writing.MinWords, item.Writing.MaxWords
		prompt = item.Writing.Prompt
	}

	length := LengthAdequacy(wordCount, minWords, maxWords)
	lexical := lexicalScore(words)
	grammar := textstat.GrammarScore(text)
	task := taskScore(prompt, text)

	p := textstat.Clamp01(weightLength*length +
		weightLexical*lexical +
		weightGrammar*grammar +
		weightTask*task)

	return model.Result{
		P:     p,
		Route: routing.FromScore(p),
		Features: map[string]float64{
			"length":    length,
			"lexical":   lexical,
			"grammar":   grammar,
			"task":      task,
			"wordCount": float64(wordCount),
		},
	}
}

// LengthAdequacy scores the word count against the item's bounds.
// Missing bounds score as adequate: the bounds are advisory metadata and
// their absence must not penalize the candidate.
func LengthAdequacy(wordCount, minWords, maxWords int) float64 {
	if minWords <= 0 && maxWords <= 0 {
		return lengthFullScore
	}
	n := float64(wordCount)

	if minWords > 0 && wordCount < minWords {
		switch {
		case n >= lengthNearMinRatio*float64(minWords):
			return lengthNearMinScore
		case n >= lengthHalfMinRatio*float64(minWords):
			return lengthHalfMinScore
		default:
			return lengthFarShortScore
		}
	}

	if maxWords > 0 && wordCount > maxWords {
		if n <= lengthOverMaxRatio*float64(maxWords) {
			return lengthSlightlyOver
		}
		return lengthFarOverScore
	}

	return lengthFullScore
}

// lexicalScore averages the type-token-ratio band and the
// advanced-vocabulary band.
func lexicalScore(words []string) float64 {
	ttr := textstat.TTRBand.Eval(textstat.TypeTokenRatio(words))
	adv := textstat.AdvancedVocabBand.Eval(textstat.AdvancedVocabRatio(words))
	return (ttr + adv) / 2
}

// taskScore averages the discourse-marker score and the prompt-keyword
// overlap ratio.
func taskScore(prompt, text string) float64 {
	marker := textstat.DiscourseMarkerScore(text)
	relevance, ok := textstat.KeywordOverlap(textstat.PromptKeywords(prompt), text)
	if !ok {
		relevance = defaultRelevance
	}
	return (marker + relevance) / 2
}
