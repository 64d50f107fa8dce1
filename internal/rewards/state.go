package rewards

import (
	"slices"

	"github.com/pawsitive/mathcat/internal/standards"
)

// DateLayout is the calendar-date format used for LastProblemDate.
const DateLayout = "2006-01-02"

// State is the gamification state of one player. The engine consumes a
// prior State and returns the next one; it never mutates its input.
type State struct {
	XP            int `json:"xp"`
	Level         int `json:"level"`
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`

	// Badges holds unlocked badge IDs in unlock order. Append-only.
	Badges []string `json:"badges"`

	// LastProblemDate is the local calendar date (YYYY-MM-DD) of the last
	// recorded attempt. Empty for a new player.
	LastProblemDate string `json:"lastProblemDate"`

	// LastCorrectDate is the date of the last correct attempt. The
	// first-correct-of-the-day bonus compares against it.
	LastCorrectDate string `json:"lastCorrectDate"`

	// Session counters reset on the first attempt of each calendar day.
	SessionCorrect int `json:"sessionCorrect"`
	SessionWrong   int `json:"sessionWrong"`
	ComebackCount  int `json:"comebackCount"`

	DomainsAttempted []standards.DomainCode `json:"domainsAttempted"`

	TotalProblems int `json:"totalProblems"`
	TotalCorrect  int `json:"totalCorrect"`
}

// NewState returns the default state for a player with no history.
func NewState() State {
	return State{
		Level:            LevelFor(0).Level,
		Badges:           []string{},
		DomainsAttempted: []standards.DomainCode{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Badges = slices.Clone(s.Badges)
	c.DomainsAttempted = slices.Clone(s.DomainsAttempted)
	if c.Badges == nil {
		c.Badges = []string{}
	}
	if c.DomainsAttempted == nil {
		c.DomainsAttempted = []standards.DomainCode{}
	}
	return c
}

// Normalize repairs a state read from storage: negative counters are
// clamped to zero, the level is recomputed from XP, best streak is at
// least the current streak, and duplicate or unknown set members are
// dropped.
func (s State) Normalize() State {
	n := s.Clone()
	n.XP = max(n.XP, 0)
	n.CurrentStreak = max(n.CurrentStreak, 0)
	n.BestStreak = max(n.BestStreak, n.CurrentStreak)
	n.SessionCorrect = max(n.SessionCorrect, 0)
	n.SessionWrong = max(n.SessionWrong, 0)
	n.ComebackCount = max(n.ComebackCount, 0)
	n.TotalProblems = max(n.TotalProblems, 0)
	n.TotalCorrect = min(max(n.TotalCorrect, 0), n.TotalProblems)
	n.Level = LevelFor(n.XP).Level

	badges := make([]string, 0, len(n.Badges))
	for _, id := range n.Badges {
		if _, ok := BadgeByID(id); ok && !slices.Contains(badges, id) {
			badges = append(badges, id)
		}
	}
	n.Badges = badges

	domains := make([]standards.DomainCode, 0, len(n.DomainsAttempted))
	for _, d := range n.DomainsAttempted {
		if slices.Contains(standards.AllDomainCodes(), d) && !slices.Contains(domains, d) {
			domains = append(domains, d)
		}
	}
	n.DomainsAttempted = domains
	return n
}

// HasBadge reports whether the badge is unlocked.
func (s State) HasBadge(id string) bool {
	return slices.Contains(s.Badges, id)
}
