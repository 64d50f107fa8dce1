package player

import (
	"time"

	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

// MasteredThreshold is the mastery at which a standard counts as mastered.
const MasteredThreshold = 80

// StandardProgress is the cumulative record for one standard.
type StandardProgress struct {
	StandardID    string    `json:"standardId"`
	Attempted     int       `json:"problemsAttempted"`
	Correct       int       `json:"problemsCorrect"`
	Mastery       int       `json:"masteryLevel"`
	LastPracticed time.Time `json:"lastPracticed"`
}

// Record counts one recorded answer and recomputes mastery.
func (p StandardProgress) Record(correct bool, now time.Time) StandardProgress {
	p.Attempted++
	if correct {
		p.Correct++
	}
	p.Mastery = rewards.Mastery(p.Correct, p.Attempted)
	p.LastPracticed = now
	return p
}

// Mastered reports whether the standard has reached the mastery threshold.
func (p StandardProgress) Mastered() bool {
	return p.Mastery >= MasteredThreshold
}

// FindProgress returns the progress for standardID, or a zero entry.
func FindProgress(progress []StandardProgress, standardID string) StandardProgress {
	for _, p := range progress {
		if p.StandardID == standardID {
			return p
		}
	}
	return StandardProgress{StandardID: standardID}
}

// MasteryMap returns standard ID to mastery for every practiced standard.
func MasteryMap(progress []StandardProgress) map[string]int {
	m := make(map[string]int, len(progress))
	for _, p := range progress {
		if p.Attempted > 0 {
			m[p.StandardID] = p.Mastery
		}
	}
	return m
}

// DomainSummary aggregates progress for one domain.
type DomainSummary struct {
	Domain    standards.Domain `json:"domain"`
	Practiced int              `json:"practiced"`
	Mastered  int              `json:"mastered"`
	Average   int              `json:"averageMastery"`
}

// SummarizeDomains returns one summary per domain in display order.
// Domains with no practiced standards report zeros.
func SummarizeDomains(progress []StandardProgress) []DomainSummary {
	var out []DomainSummary
	for _, d := range standards.Domains() {
		s := DomainSummary{Domain: d}
		sum := 0
		for _, p := range progress {
			if p.Attempted == 0 || standards.DomainOf(p.StandardID) != d.Code {
				continue
			}
			s.Practiced++
			sum += p.Mastery
			if p.Mastered() {
				s.Mastered++
			}
		}
		if s.Practiced > 0 {
			s.Average = rewards.Mastery(sum, s.Practiced*100)
		}
		out = append(out, s)
	}
	return out
}

// Aggregate is the headline statistics block.
type Aggregate struct {
	TotalProblems     int `json:"totalProblems"`
	TotalCorrect      int `json:"totalCorrect"`
	Accuracy          int `json:"accuracy"`
	StandardsMastered int `json:"standardsMastered"`
}

// Summarize computes aggregate statistics from attempt-log totals and
// standard progress.
func Summarize(totalProblems, totalCorrect int, progress []StandardProgress) Aggregate {
	a := Aggregate{
		TotalProblems: totalProblems,
		TotalCorrect:  totalCorrect,
		Accuracy:      rewards.Mastery(totalCorrect, totalProblems),
	}
	for _, p := range progress {
		if p.Mastered() {
			a.StandardsMastered++
		}
	}
	return a
}
