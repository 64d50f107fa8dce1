package problemgen

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// tolerance is the maximum numeric difference accepted as correct.
const tolerance = 0.01

// CheckAnswer compares the learner's input against the problem's answers.
// Returns true if the answer is correct. It never errors: empty or
// unparseable input is simply incorrect.
//
// Both sides are normalized (trimmed, lowercased, all whitespace and "$"
// removed), then:
//   - equal to the canonical answer: correct
//   - equal to any acceptable variant: correct
//   - both parse as floating-point numbers and differ by less than 0.01:
//     correct
//
// Fraction forms are only accepted through AcceptableAnswers.
func CheckAnswer(p *Problem, raw string) bool {
	user := Normalize(raw)
	if user == "" {
		return false
	}

	correct := Normalize(p.CorrectAnswer)
	if user == correct {
		return true
	}
	for _, alt := range p.AcceptableAnswers {
		if user == Normalize(alt) {
			return true
		}
	}

	u, ok := parseNumber(user)
	if !ok {
		return false
	}
	c, ok := parseNumber(correct)
	if !ok {
		return false
	}
	return math.Abs(u-c) < tolerance
}

// Normalize canonicalizes an answer for comparison.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '$' {
			return -1
		}
		return r
	}, s)
}

// parseNumber parses a normalized answer as a finite float.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
