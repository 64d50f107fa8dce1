package standards

import (
	"sort"
	"strings"
)

// Detect ranks catalog standards by how many of their keywords occur in
// text (case-insensitive substring match). Standards with no hits are
// omitted; ties keep catalog order.
func Detect(text string) []Standard {
	lower := strings.ToLower(text)

	type scored struct {
		std   Standard
		score int
	}
	var hits []scored
	for _, s := range c.standards {
		n := 0
		for _, kw := range s.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, scored{std: s, score: n})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]Standard, len(hits))
	for i, h := range hits {
		out[i] = h.std
	}
	return out
}
