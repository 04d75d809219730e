// Package similarity scores lexical overlap between two texts. It is the
// cheap pre-filter for connection suggestions: no stemming, no weighting,
// just lowercased whitespace-separated words.
package similarity

import "strings"

// Score returns the word-overlap score between a and b.
//
// Every word occurrence in a counts toward the intersection when that word
// appears anywhere in b; the union ranges over the distinct words of both
// texts. When both texts are empty the score is 0. Callers compare scores
// against a fixed threshold, not across pairs.
func Score(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))

	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	union := make(map[string]struct{}, len(wordsA)+len(setB))
	for w := range setB {
		union[w] = struct{}{}
	}

	matches := 0
	for _, w := range wordsA {
		union[w] = struct{}{}
		if _, ok := setB[w]; ok {
			matches++
		}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(matches) / float64(len(union))
}
