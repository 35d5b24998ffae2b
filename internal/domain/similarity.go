package domain

import (
	"regexp"
	"sort"
	"strings"
)

// tokenSplitRe splits on runs of anything that is not a letter or digit, so
// punctuation and whitespace differences between data sources wash out.
var tokenSplitRe = regexp.MustCompile(`[^\pL\pN]+`)

// Similarity compares two strings and returns a score in [0, 1].
//
// Both inputs are lowercased, tokenized, and re-joined with their tokens in
// sorted order before comparison, so word-order differences do not penalize
// the score ("Tech Don Bosco" matches "Don Bosco Tech" exactly). The
// underlying comparison is a longest-common-subsequence ratio rather than
// equality because real-world names differ in abbreviation, punctuation, and
// minor spelling across sources. Commutative; empty vs empty is 1.
func Similarity(a, b string) float64 {
	na := normalizeTokens(a)
	nb := normalizeTokens(b)
	if na == nb {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}
	return lcsRatio(na, nb)
}

// normalizeTokens lowercases, tokenizes, sorts, and re-joins a string.
func normalizeTokens(s string) string {
	parts := tokenSplitRe.Split(strings.ToLower(strings.TrimSpace(s)), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsRatio returns 2*LCS(a,b) / (len(a)+len(b)) over runes, the classic
// difflib-style edit similarity. 1 for identical strings, 0 when no runes
// match.
func lcsRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
