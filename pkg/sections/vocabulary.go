package sections

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Standard section names.
const (
	Intro      = "Intro"
	Verse      = "Verse"
	PreChorus  = "Pre-Chorus"
	Chorus     = "Chorus"
	PostChorus = "Post-Chorus"
	Bridge     = "Bridge"
	Outro      = "Outro"
)

// SuggestedFuzzyThreshold is a Jaro-Winkler similarity that snaps common
// misspellings such as "Chrous" without merging unrelated labels in practice.
// Fuzzy matching is off unless a threshold is set with WithFuzzyThreshold.
const SuggestedFuzzyThreshold float32 = 0.88

// vocabulary is checked in this order; the first match wins.
var vocabulary = []string{Intro, Verse, PreChorus, Chorus, PostChorus, Bridge, Outro}

// repeatable sections may appear as a bare header standing for the earlier lyrics.
var repeatable = map[string]bool{
	Chorus:     true,
	PreChorus:  true,
	PostChorus: true,
}

// containsEntry reports whether entry occurs in label outside of any longer
// vocabulary entry that embeds it, so "Chorus" does not match "Post-Chorus".
func containsEntry(label, entry string) bool {
	stripped := label
	for _, other := range vocabulary {
		if len(other) > len(entry) && strings.Contains(other, entry) {
			stripped = strings.ReplaceAll(stripped, other, " ")
		}
	}
	return strings.Contains(stripped, entry)
}

// canonicalize maps a title-cased label to a standard section name. The second
// return value is false when the label is kept as-is.
func canonicalize(label string, fuzzyThreshold float32) (string, bool) {
	for _, entry := range vocabulary {
		if containsEntry(label, entry) {
			return entry, true
		}
	}

	if fuzzyThreshold <= 0 || label == "" {
		return label, false
	}

	best, bestScore := "", float32(0)
	lower := strings.ToLower(label)
	for _, entry := range vocabulary {
		score, err := edlib.StringsSimilarity(lower, strings.ToLower(entry), edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = entry, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return label, false
}
