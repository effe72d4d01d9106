package simulate

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Quality tiers for synthetic responses.
const (
	QualityStrong  = "strong"
	QualityAverage = "average"
	QualityWeak    = "weak"
	QualityEmpty   = "empty"
)

// qualityTiers is the draw order for generated attempts. Empty is rare
// on purpose: it only exercises the short-circuit path.
var qualityTiers = []string{
	QualityStrong, QualityStrong, QualityStrong,
	QualityAverage, QualityAverage, QualityAverage, QualityAverage,
	QualityWeak, QualityWeak,
	QualityEmpty,
}

var speakingPrompts = []string{
	"Describe a place you visited recently and explain why it was memorable",
	"Talk about a skill you would like to learn and how you plan to learn it",
	"Describe your favorite meal and explain how it is prepared",
}

var writingPrompts = []string{
	"Some people prefer working from home while others prefer an office. Discuss both views",
	"Describe the advantages and disadvantages of learning a language online",
	"Do you agree that public transport should be free for students",
}

// Sentence pools per quality tier. Strong text is varied and connected;
// weak text is short, repetitive, and carries planted grammar slips.
var strongSentences = []string{
	"Furthermore, the experience fundamentally altered my perspective on cultural exchange and communication.",
	"In my opinion, the benefits substantially outweigh the drawbacks when institutions prepare carefully.",
	"However, critics frequently overlook the considerable logistical obstacles involved in implementation.",
	"The atmosphere was remarkable because local residents genuinely welcomed visitors into their traditions.",
	"Consequently, I developed a deeper appreciation for disciplined practice and gradual improvement.",
	"First, accessible education creates measurable economic advantages for entire communities over time.",
}

var averageSentences = []string{
	"I think it was a good experience because I learned many things there.",
	"Also, many people like this because it is useful for their daily life.",
	"In my opinion this is important and more people should try it.",
	"The place was nice and the food was good so I enjoyed the visit.",
	"Because of this, I want to go again next year with my friends.",
}

var weakSentences = []string{
	"it was good i like it very much",
	"he don't know about this thing",
	"i go there yesterday and it is nice",
	"the peoples was very kind to me",
	"i like i like it is good",
}

// fillers pads weak speaking transcripts with hesitation markers.
const fillers = "um uh er like you know "

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// GenerateAttempts creates synthetic attempts alternating across skills
// and cycling through quality tiers.
func GenerateAttempts(n int) []Attempt {
	attempts := make([]Attempt, n)
	for i := 0; i < n; i++ {
		quality := qualityTiers[i%len(qualityTiers)]
		if i%2 == 0 {
			attempts[i] = speakingAttempt(quality)
		} else {
			attempts[i] = writingAttempt(quality)
		}
	}
	return attempts
}

func speakingAttempt(quality string) Attempt {
	prompt := speakingPrompts[randomInt(len(speakingPrompts))]
	return Attempt{
		AttemptID:   uuid.NewString(),
		CandidateID: "sim-" + uuid.NewString()[:8],
		Skill:       "speaking",
		Quality:     quality,
		Item: Item{
			Skill:    "speaking",
			Stage:    "core",
			Speaking: &SpeakingAssets{Prompt: prompt, RecordSeconds: 45},
		},
		Response: Payload{
			Transcript: buildText(quality, 100),
			Confidence: confidenceFor(quality),
		},
	}
}

func writingAttempt(quality string) Attempt {
	prompt := writingPrompts[randomInt(len(writingPrompts))]
	return Attempt{
		AttemptID:   uuid.NewString(),
		CandidateID: "sim-" + uuid.NewString()[:8],
		Skill:       "writing",
		Quality:     quality,
		Item: Item{
			Skill:   "writing",
			Stage:   "core",
			Writing: &WritingAssets{Prompt: prompt, MinWords: 40, MaxWords: 250, TaskType: "opinion"},
		},
		Response: Payload{
			Text: buildText(quality, 120),
		},
	}
}

// buildText assembles a response of roughly targetWords from the
// quality tier's sentence pool.
func buildText(quality string, targetWords int) string {
	var pool []string
	switch quality {
	case QualityStrong:
		pool = strongSentences
	case QualityAverage:
		pool = averageSentences
	case QualityWeak:
		pool = weakSentences
	case QualityEmpty:
		return ""
	default:
		pool = averageSentences
	}

	var b strings.Builder
	words := 0
	if quality == QualityWeak {
		b.WriteString(fillers)
		words += 5
	}
	for words < targetWords {
		s := pool[randomInt(len(pool))]
		b.WriteString(s)
		b.WriteString(" ")
		words += len(strings.Fields(s))
	}
	return strings.TrimSpace(b.String())
}

func confidenceFor(quality string) float64 {
	switch quality {
	case QualityStrong:
		return 0.95
	case QualityAverage:
		return 0.85
	case QualityWeak:
		return 0.6
	default:
		return 0
	}
}
