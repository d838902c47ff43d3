package scorer

import (
	"math"
	"strings"
	"unicode"

	"github.com/jaywantadh/GradeByte/internal/classifier"
)

const (
	Match    = 100
	Mismatch = 0
)

// ScoreMap maps a question number to Match or Mismatch.
type ScoreMap map[int]int

// Normalize trims s, drops every rune that is not a letter, number or
// underscore, and lowercases the rest. Numbers include superscripts,
// fractions and roman numerals, not just decimal digits.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// Score compares candidate against key for every question in 1..n. Absent
// answers count as empty, so two blanks match.
func Score(key, candidate classifier.AnswerMap, n int) ScoreMap {
	scores := make(ScoreMap, n)
	for q := 1; q <= n; q++ {
		if Normalize(key[q]) == Normalize(candidate[q]) {
			scores[q] = Match
		} else {
			scores[q] = Mismatch
		}
	}
	return scores
}

// Average is the mean score over questions 1..n rounded to 2 decimals,
// halves to even.
func Average(scores ScoreMap, n int) float64 {
	if n <= 0 {
		return 0
	}
	total := 0
	for q := 1; q <= n; q++ {
		total += scores[q]
	}
	return math.RoundToEven(float64(total)/float64(n)*100) / 100
}
