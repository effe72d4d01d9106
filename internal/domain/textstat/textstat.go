// Package textstat provides the rule-based text features shared by the
// skill scorers: tokenization, tier tables, lexical diversity, grammar
// error density, and task-relevance measures. Everything here is a pure
// function of its input plus fixed reference data.
package textstat

import (
	"math"
	"strings"

	"github.com/linguaport/quickscore/internal/domain/lexicon"
)

// Clamp01 bounds v to [0,1]. Non-finite input collapses to zero so a
// degenerate intermediate can never leak out of a scorer.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Words tokenizes text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences splits text on terminal punctuation, dropping empty fragments.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, strings.TrimSpace(p))
		}
	}
	return sentences
}

// Tier pairs a minimum threshold with the band score awarded at or above it.
type Tier struct {
	Min   float64
	Score float64
}

// Band is an ordered (threshold, score) table evaluated top-down.
// Floor is awarded when no tier matches, and for non-finite input.
type Band struct {
	Tiers []Tier
	Floor float64
}

// Eval returns the score of the first tier whose threshold v meets.
func (b Band) Eval(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return b.Floor
	}
	for _, t := range b.Tiers {
		if v >= t.Min {
			return t.Score
		}
	}
	return b.Floor
}

// DensityTier pairs a maximum threshold with the band score awarded at or
// below it. Used for error-density style features where less is better.
type DensityTier struct {
	Max   float64
	Score float64
}

// DensityBand is an ordered (threshold, score) table evaluated top-down.
// Floor is awarded when no tier matches, and for non-finite input.
type DensityBand struct {
	Tiers []DensityTier
	Floor float64
}

// Eval returns the score of the first tier whose threshold v fits under.
func (b DensityBand) Eval(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return b.Floor
	}
	for _, t := range b.Tiers {
		if v <= t.Max {
			return t.Score
		}
	}
	return b.Floor
}

// TTRBand maps a type-token ratio into five lexical-diversity bands.
var TTRBand = Band{
	Tiers: []Tier{
		{Min: 0.6, Score: 1.0},
		{Min: 0.5, Score: 0.8},
		{Min: 0.4, Score: 0.6},
		{Min: 0.3, Score: 0.4},
	},
	Floor: 0.2,
}

// AdvancedVocabBand maps the advanced-vocabulary ratio into four bands.
var AdvancedVocabBand = Band{
	Tiers: []Tier{
		{Min: 0.3, Score: 1.0},
		{Min: 0.2, Score: 0.7},
		{Min: 0.1, Score: 0.5},
	},
	Floor: 0.3,
}

// GrammarBand maps error density (errors per sentence) into five bands.
var GrammarBand = DensityBand{
	Tiers: []DensityTier{
		{Max: 0, Score: 1.0},
		{Max: 0.1, Score: 0.8},
		{Max: 0.2, Score: 0.6},
		{Max: 0.3, Score: 0.4},
	},
	Floor: 0.2,
}

// grammarErrorPatterns lists known learner-error fragments counted against
// the grammar feature: subject-verb agreement slips, double comparatives,
// uncountable-noun article misuse, and modal+infinitive misuse.
var grammarErrorPatterns = []string{
	"he don't", "she don't", "it don't",
	"he have", "she have", "it have",
	"i has", "you has", "they has", "we has",
	"they was", "we was", "you was", "i were",
	"more better", "more worse", "more easier", "more bigger", "most best",
	"a information", "an information", "a money", "a furniture", "an advice",
	"informations", "furnitures", "advices", "equipments",
	"must to", "can to", "should to", "could to", "would to", "might to",
}

// discourseMarkers lists the structure markers counted toward task relevance.
var discourseMarkers = []string{
	"first", "second", "third", "finally", "next", "then",
	"because", "however", "therefore", "although", "moreover", "furthermore",
	"for example", "for instance", "in conclusion", "in my opinion",
	"on the other hand", "as a result",
}

// markerScoreCap caps the discourse-marker contribution at this many hits.
const markerScoreCap = 3

// minKeywordLength drops short tokens from prompt keyword extraction.
const minKeywordLength = 3

// TypeTokenRatio returns distinct normalized word forms over total words.
// Zero words yields zero.
func TypeTokenRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		if n := lexicon.Normalize(w); n != "" {
			distinct[n] = struct{}{}
		}
	}
	return float64(len(distinct)) / float64(len(words))
}

// AdvancedVocabRatio returns the fraction of distinct normalized words,
// longer than two characters, that are absent from the common-word set.
func AdvancedVocabRatio(words []string) float64 {
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		n := lexicon.Normalize(w)
		if len(n) > 2 {
			distinct[n] = struct{}{}
		}
	}
	if len(distinct) == 0 {
		return 0
	}
	advanced := 0
	for w := range distinct {
		if !lexicon.IsCommon(w) {
			advanced++
		}
	}
	return float64(advanced) / float64(len(distinct))
}

// grammarPatternTokens pre-splits each error pattern into tokens so that
// matching is word-boundary exact: "She have" matches only the "she have"
// pattern, never the "he have" substring inside it.
var grammarPatternTokens = func() [][]string {
	split := make([][]string, len(grammarErrorPatterns))
	for i, p := range grammarErrorPatterns {
		split[i] = strings.Fields(p)
	}
	return split
}()

// GrammarErrorDensity counts known error patterns per sentence. Patterns
// match against the normalized token stream of each sentence, so a slip
// counts once and never matches across a sentence boundary.
// ok is false when the text has no sentences.
func GrammarErrorDensity(text string) (density float64, ok bool) {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return 0, false
	}
	errors := 0
	for _, s := range sentences {
		tokens := normalizedTokens(s)
		for _, pat := range grammarPatternTokens {
			errors += countTokenRuns(tokens, pat)
		}
	}
	return float64(errors) / float64(len(sentences)), true
}

// normalizedTokens normalizes each word of text, dropping tokens that
// normalize to nothing.
func normalizedTokens(text string) []string {
	words := Words(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if n := lexicon.Normalize(w); n != "" {
			tokens = append(tokens, n)
		}
	}
	return tokens
}

// countTokenRuns counts non-overlapping occurrences of pat as a
// contiguous run in tokens.
func countTokenRuns(tokens, pat []string) int {
	if len(pat) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(pat) <= len(tokens); i++ {
		matched := true
		for j, p := range pat {
			if tokens[i+j] != p {
				matched = false
				break
			}
		}
		if matched {
			count++
			i += len(pat) - 1
		}
	}
	return count
}

// GrammarScore maps text to its grammar sub-score. Text with no
// sentence structure bottoms out rather than erroring.
func GrammarScore(text string) float64 {
	density, ok := GrammarErrorDensity(text)
	if !ok {
		return 0.1
	}
	return GrammarBand.Eval(density)
}

// DiscourseMarkerScore counts structure markers, capped at markerScoreCap.
func DiscourseMarkerScore(text string) float64 {
	lowered := strings.ToLower(text)
	count := 0
	for _, m := range discourseMarkers {
		count += strings.Count(lowered, m)
	}
	if count >= markerScoreCap {
		return 1.0
	}
	return float64(count) / float64(markerScoreCap)
}

// PromptKeywords extracts the content words of a prompt: normalized,
// longer than minKeywordLength-1 characters, and not in the common set.
func PromptKeywords(prompt string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, w := range Words(prompt) {
		n := lexicon.Normalize(w)
		if len(n) < minKeywordLength || lexicon.IsCommon(n) {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		keywords = append(keywords, n)
	}
	return keywords
}

// KeywordOverlap returns the fraction of keywords that appear in the text.
// ok is false when the keyword list is empty, letting the caller apply a
// neutral default instead of dividing by zero.
func KeywordOverlap(keywords []string, text string) (ratio float64, ok bool) {
	if len(keywords) == 0 {
		return 0, false
	}
	present := make(map[string]struct{})
	for _, w := range Words(text) {
		present[lexicon.Normalize(w)] = struct{}{}
	}
	hits := 0
	for _, k := range keywords {
		if _, found := present[lexicon.Normalize(k)]; found {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords)), true
}
