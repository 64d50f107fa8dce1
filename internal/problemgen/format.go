package problemgen

import (
	"fmt"
	"strconv"
)

// num renders f in its shortest round-trip form ("2", "2.5", "3.3333333333333335").
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// fixed renders f with exactly n decimals.
func fixed(f float64, n int) string {
	return strconv.FormatFloat(f, 'f', n, 64)
}

// signed wraps negative integers in parentheses for display in expressions.
func signed(n int) string {
	if n < 0 {
		return fmt.Sprintf("(%d)", n)
	}
	return strconv.Itoa(n)
}

// variants returns answers with duplicates removed, keeping first occurrence.
func variants(answers ...string) []string {
	seen := make(map[string]bool, len(answers))
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// gcd returns the greatest common divisor of |a| and |b|.
func gcd(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
