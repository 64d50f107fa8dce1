package problemgen

import (
	"fmt"
	"strings"
)

// buildDedup numbers the most recent prior questions for the prompt.
// Returns "None" if there are none.
func buildDedup(prior []string, limit int) string {
	if len(prior) == 0 {
		return "None"
	}
	if limit > 0 && len(prior) > limit {
		prior = prior[len(prior)-limit:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
