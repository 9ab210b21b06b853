package textutil

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity computes a normalized edit-distance similarity between two
// strings: 1 - distance/max(len). Identical strings score 1; an empty string
// on either side scores 0. Comparison is case-sensitive; callers normalize
// case first.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	return 1 - float64(distance)/float64(longest)
}
