// Package lexicon holds the fixed high-frequency word reference set used
// to classify vocabulary as common vs. advanced.
package lexicon

import "strings"

// commonWords is the reference list of high-frequency English words.
// A word absent from this set counts as advanced vocabulary.
var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"is", "are", "was", "were", "been", "being", "am", "has", "had", "did",
	"does", "doing", "said", "says", "went", "gone", "got", "made", "came", "took",
	"very", "really", "thing", "things", "something", "nothing", "everything", "anything",
	"here", "where", "why", "yes", "no", "maybe", "always", "never", "sometimes", "often",
	"big", "small", "old", "young", "long", "short", "high", "low", "right", "wrong",
	"many", "much", "more", "less", "few", "little", "lot", "lots", "every", "each",
	"man", "woman", "child", "children", "friend", "family", "home", "house", "school", "city",
	"country", "world", "life", "hand", "eye", "place", "week", "month", "night", "today",
	"water", "food", "money", "book", "word", "name", "number", "part", "kind", "sort",
	"help", "talk", "tell", "ask", "feel", "find", "leave", "call", "keep", "let",
	"put", "mean", "become", "show", "hear", "play", "run", "move", "live", "believe",
	"happen", "write", "read", "sit", "stand", "lose", "pay", "meet", "learn", "change",
	"start", "stop", "open", "close", "walk", "speak", "eat", "drink", "sleep", "buy",
	"before", "again", "still", "between", "both", "under", "same", "different", "next", "last",
	"around", "through", "during", "without", "against", "while", "another", "such", "own", "too",
	"better", "best", "sure", "able", "free", "far", "near", "early", "late", "hard",
	"easy", "nice", "bad", "great", "important", "happy", "love", "hope", "need", "try",
}

// common is the read-only lookup built once from commonWords.
var common = func() map[string]struct{} {
	m := make(map[string]struct{}, len(commonWords))
	for _, w := range commonWords {
		m[w] = struct{}{}
	}
	return m
}()

// Normalize lowercases a word and strips surrounding punctuation so that
// "Word," and "word" classify identically.
func Normalize(word string) string {
	return strings.Trim(strings.ToLower(word), ".,!?;:'\"()[]{}-")
}

// IsCommon reports whether the normalized word is in the high-frequency set.
func IsCommon(word string) bool {
	_, ok := common[Normalize(word)]
	return ok
}

// Size returns the number of words in the reference set.
func Size() int {
	return len(common)
}
