package rewards

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/pawsitive/mathcat/internal/standards"
)

// masteredThreshold is the average mastery at which a domain counts as mastered.
const masteredThreshold = 80

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)

// Outcome is one recorded answer fed to the engine.
type Outcome struct {
	Correct    bool
	StandardID string

	// Mastery maps every practiced standard to its mastery before this
	// attempt. Used for domain mastery badges, so a single answer can
	// never master a domain on its own.
	Mastery map[string]int
}

// Result is the payload shown to the player after an attempt.
type Result struct {
	XPEarned      int      `json:"xpEarned"`
	XPBreakdown   []string `json:"xpBreakdown"`
	NewBadges     []Badge  `json:"newBadges"`
	NewLevel      bool     `json:"newLevel"`
	LevelInfo     Level    `json:"levelInfo"`
	CurrentStreak int      `json:"currentStreak"`
	TotalXP       int      `json:"totalXP"`
}

// Engine applies answer outcomes to player state. It is a pure function
// of (outcome, prior state, clock time).
type Engine struct {
	clock Clock
}

// NewEngine creates an Engine. A nil clock means SystemClock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	return &Engine{clock: clock}
}

// Today returns the engine's current calendar date.
func (e *Engine) Today() string {
	return e.clock.Now().Format(DateLayout)
}

// Apply computes the next state and the result payload for one recorded
// answer. prior is not modified.
func (e *Engine) Apply(prior State, o Outcome) (State, Result) {
	now := e.clock.Now()
	today := now.Format(DateLayout)
	newDay := prior.LastProblemDate != today
	firstCorrectToday := o.Correct && prior.LastCorrectDate != today

	next := prior.Clone()
	next.LastProblemDate = today

	if o.Correct {
		next.CurrentStreak = prior.CurrentStreak + 1
		next.LastCorrectDate = today
	} else {
		next.CurrentStreak = 0
	}
	next.BestStreak = max(prior.BestStreak, next.CurrentStreak)

	if newDay {
		next.SessionCorrect, next.SessionWrong, next.ComebackCount = 0, 0, 0
	}
	if o.Correct {
		next.SessionCorrect++
		if next.SessionWrong >= 3 {
			next.ComebackCount++
		}
	} else {
		next.SessionWrong++
	}

	next.TotalProblems++
	if o.Correct {
		next.TotalCorrect++
	}

	if d := standards.DomainOf(o.StandardID); d != "" && !slices.Contains(next.DomainsAttempted, d) {
		next.DomainsAttempted = append(next.DomainsAttempted, d)
	}

	earned, breakdown := XPForAnswer(o.Correct, next.CurrentStreak, firstCorrectToday)
	newBadges := []Badge{}
	if o.Correct {
		newBadges = CheckNewBadges(Stats{
			TotalProblems:    next.TotalProblems,
			BestStreak:       next.BestStreak,
			DomainsMastered:  DomainsMastered(o.Mastery),
			DomainsAttempted: next.DomainsAttempted,
			SessionCorrect:   next.SessionCorrect,
			SessionWrong:     next.SessionWrong,
			ComebackCount:    next.ComebackCount,
			Now:              now,
		}, prior.Badges)
		for _, b := range newBadges {
			earned += b.XPReward
			breakdown = append(breakdown, fmt.Sprintf("+%d %s %s badge!", b.XPReward, b.Icon, b.Name))
			next.Badges = append(next.Badges, b.ID)
		}
	}

	next.XP = prior.XP + earned
	lvl := LevelFor(next.XP)
	next.Level = lvl.Level

	return next, Result{
		XPEarned:      earned,
		XPBreakdown:   breakdown,
		NewBadges:     newBadges,
		NewLevel:      lvl.Level > LevelFor(prior.XP).Level,
		LevelInfo:     lvl,
		CurrentStreak: next.CurrentStreak,
		TotalXP:       next.XP,
	}
}

// DomainsMastered returns, in display order, the domains whose average
// mastery over practiced standards is at least 80.
func DomainsMastered(mastery map[string]int) []standards.DomainCode {
	sum := make(map[standards.DomainCode]int)
	n := make(map[standards.DomainCode]int)
	for id, m := range mastery {
		d := standards.DomainOf(id)
		if d == "" {
			continue
		}
		sum[d] += m
		n[d]++
	}

	var out []standards.DomainCode
	for _, d := range standards.AllDomainCodes() {
		if n[d] == 0 {
			continue
		}
		if float64(sum[d])/float64(n[d]) >= masteredThreshold {
			out = append(out, d)
		}
	}
	return out
}

// Mastery returns round(100 * correct / attempted) clamped to [0, 100].
// Zero attempts means zero mastery.
func Mastery(correct, attempted int) int {
	if attempted <= 0 {
		return 0
	}
	m := int(math.Round(100 * float64(correct) / float64(attempted)))
	return min(max(m, 0), 100)
}
