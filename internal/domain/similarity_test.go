package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Don Bosco Tech", "Don Bosco Tech"))
	assert.Equal(t, 1.0, Similarity("don bosco tech", "DON BOSCO TECH"))
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarity_EmptyVersusNonEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "Springfield"))
	assert.Equal(t, 0.0, Similarity("Springfield", ""))
}

func TestSimilarity_TokenOrderInvariance(t *testing.T) {
	reordered := Similarity("Don Bosco Tech", "Tech Don Bosco")
	same := Similarity("Don Bosco Tech", "Don Bosco Tech")
	assert.Equal(t, same, reordered)
}

func TestSimilarity_Commutative(t *testing.T) {
	pairs := [][2]string{
		{"Springfield City Hall", "City Hall"},
		{"Acme Corp", "Acme Corporation"},
		{"St. Louis", "Saint Louis"},
		{"", "x"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %q/%q", p[0], p[1])
	}
}

func TestSimilarity_PunctuationIgnored(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Jacob K. Javits Center", "jacob k javits center"))
	assert.Equal(t, 1.0, Similarity("one-two,three", "three two one"))
}

func TestSimilarity_NoOverlap(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("zzz", "qqq"))
}

func TestSimilarity_PartialMatchInRange(t *testing.T) {
	s := Similarity("City Hall", "Springfield City Hall")
	assert.Greater(t, s, 0.5)
	assert.Less(t, s, 1.0)
}
