package retriever

import (
	"math"
	"strings"
	"unicode"
)

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return finiteOrZero(dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// DiceCoefficient compares two strings by their character bigrams after
// removing all whitespace. Bigrams are counted as a multiset. Identical
// strings score 1; a string with fewer than two characters scores 0
// against anything else.
func DiceCoefficient(a, b string) float64 {
	first := stripSpace(a)
	second := stripSpace(b)

	if string(first) == string(second) {
		return 1
	}
	if len(first) < 2 || len(second) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(first)-1)
	for i := 0; i < len(first)-1; i++ {
		bigrams[[2]rune{first[i], first[i+1]}]++
	}

	intersection := 0
	for i := 0; i < len(second)-1; i++ {
		bg := [2]rune{second[i], second[i+1]}
		if bigrams[bg] > 0 {
			bigrams[bg]--
			intersection++
		}
	}

	return 2 * float64(intersection) / float64(len(first)+len(second)-2)
}

func stripSpace(s string) []rune {
	return []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
