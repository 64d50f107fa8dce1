package rewards

import (
	"slices"
	"time"

	"github.com/pawsitive/mathcat/internal/standards"
)

// Category groups badges for display.
type Category string

const (
	CategoryStreak   Category = "streak"
	CategoryProblems Category = "problems"
	CategoryMastery  Category = "mastery"
	CategoryTime     Category = "time"
	CategorySpecial  Category = "special"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryStreak, CategoryProblems, CategoryMastery, CategoryTime, CategorySpecial}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryStreak:
		return "Streaks"
	case CategoryProblems:
		return "Problems Solved"
	case CategoryMastery:
		return "Domain Mastery"
	case CategoryTime:
		return "Time"
	case CategorySpecial:
		return "Special"
	default:
		return string(c)
	}
}

// Badge is an unlockable achievement. Badges are never revoked.
type Badge struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement int      `json:"requirement"`
	XPReward    int      `json:"xpReward"`
}

// Badges is the badge catalog in check order.
var Badges = []Badge{
	{ID: "streak_3", Name: "Hot Start", Description: "Get 3 correct in a row", Icon: "🔥", Category: CategoryStreak, Requirement: 3, XPReward: 20},
	{ID: "streak_5", Name: "On Fire", Description: "Get 5 correct in a row", Icon: "🔥", Category: CategoryStreak, Requirement: 5, XPReward: 30},
	{ID: "streak_10", Name: "Unstoppable", Description: "Get 10 correct in a row", Icon: "💥", Category: CategoryStreak, Requirement: 10, XPReward: 50},
	{ID: "streak_20", Name: "Legendary", Description: "Get 20 correct in a row", Icon: "⚡", Category: CategoryStreak, Requirement: 20, XPReward: 100},

	{ID: "problems_1", Name: "First Steps", Description: "Solve your first problem", Icon: "🐾", Category: CategoryProblems, Requirement: 1, XPReward: 10},
	{ID: "problems_10", Name: "Getting Started", Description: "Solve 10 problems", Icon: "📝", Category: CategoryProblems, Requirement: 10, XPReward: 25},
	{ID: "problems_50", Name: "Problem Solver", Description: "Solve 50 problems", Icon: "🧮", Category: CategoryProblems, Requirement: 50, XPReward: 50},
	{ID: "problems_100", Name: "Century Club", Description: "Solve 100 problems", Icon: "💯", Category: CategoryProblems, Requirement: 100, XPReward: 100},
	{ID: "problems_500", Name: "Math Machine", Description: "Solve 500 problems", Icon: "🤖", Category: CategoryProblems, Requirement: 500, XPReward: 250},

	{ID: "master_rp", Name: "Ratio Ruler", Description: "Master Ratios & Proportions (80%+)", Icon: "📊", Category: CategoryMastery, Requirement: 80, XPReward: 75},
	{ID: "master_ns", Name: "Number Ninja", Description: "Master Number System (80%+)", Icon: "🔢", Category: CategoryMastery, Requirement: 80, XPReward: 75},
	{ID: "master_ee", Name: "Expression Expert", Description: "Master Expressions & Equations (80%+)", Icon: "✖️", Category: CategoryMastery, Requirement: 80, XPReward: 75},
	{ID: "master_g", Name: "Geometry Genius", Description: "Master Geometry (80%+)", Icon: "📐", Category: CategoryMastery, Requirement: 80, XPReward: 75},
	{ID: "master_sp", Name: "Probability Pro", Description: "Master Statistics & Probability (80%+)", Icon: "🎲", Category: CategoryMastery, Requirement: 80, XPReward: 75},

	{ID: "perfect_10", Name: "Perfect 10", Description: "Get 10 correct with no mistakes in one session", Icon: "⭐", Category: CategorySpecial, Requirement: 10, XPReward: 75},
	{ID: "comeback", Name: "Comeback Cat", Description: "Get 5 correct after getting 3 wrong", Icon: "💪", Category: CategorySpecial, Requirement: 5, XPReward: 40},
	{ID: "early_bird", Name: "Early Bird", Description: "Practice before 8 AM", Icon: "🌅", Category: CategorySpecial, Requirement: 8, XPReward: 25},
	{ID: "night_owl", Name: "Night Owl", Description: "Practice after 8 PM", Icon: "🦉", Category: CategorySpecial, Requirement: 20, XPReward: 25},
	{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Practice on Saturday or Sunday", Icon: "🏆", Category: CategorySpecial, Requirement: 0, XPReward: 30},
	{ID: "all_domains", Name: "Well Rounded", Description: "Solve problems in all 5 domains", Icon: "🌟", Category: CategorySpecial, Requirement: 5, XPReward: 100},
}

// masteryBadgeDomain maps mastery badge IDs to their domain.
var masteryBadgeDomain = map[string]standards.DomainCode{
	"master_rp": standards.DomainRP,
	"master_ns": standards.DomainNS,
	"master_ee": standards.DomainEE,
	"master_g":  standards.DomainG,
	"master_sp": standards.DomainSP,
}

// BadgeByID looks up a badge in the catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Unlocked returns the catalog badges whose IDs appear in ids, in catalog order.
func Unlocked(ids []string) []Badge {
	var out []Badge
	for _, b := range Badges {
		if slices.Contains(ids, b.ID) {
			out = append(out, b)
		}
	}
	return out
}

// Locked returns the catalog badges whose IDs do not appear in ids.
func Locked(ids []string) []Badge {
	var out []Badge
	for _, b := range Badges {
		if !slices.Contains(ids, b.ID) {
			out = append(out, b)
		}
	}
	return out
}

// Stats is the snapshot badge rules are evaluated against.
type Stats struct {
	TotalProblems    int
	BestStreak       int
	DomainsMastered  []standards.DomainCode
	DomainsAttempted []standards.DomainCode
	SessionCorrect   int
	SessionWrong     int
	ComebackCount    int
	// Now is the local time of the attempt.
	Now time.Time
}

// unlocks reports whether stats satisfy badge b.
func (b Badge) unlocks(s Stats) bool {
	switch b.Category {
	case CategoryStreak:
		return s.BestStreak >= b.Requirement
	case CategoryProblems:
		return s.TotalProblems >= b.Requirement
	case CategoryMastery:
		return slices.Contains(s.DomainsMastered, masteryBadgeDomain[b.ID])
	}

	switch b.ID {
	case "perfect_10":
		return s.SessionCorrect >= b.Requirement && s.SessionWrong == 0
	case "comeback":
		return s.ComebackCount >= b.Requirement
	case "early_bird":
		return s.Now.Hour() < b.Requirement
	case "night_owl":
		return s.Now.Hour() >= b.Requirement
	case "weekend_warrior":
		wd := s.Now.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case "all_domains":
		return len(s.DomainsAttempted) >= b.Requirement
	}
	return false
}

// CheckNewBadges returns the badges stats qualify for that are not already
// in current, in catalog order.
func CheckNewBadges(s Stats, current []string) []Badge {
	out := []Badge{}
	for _, b := range Badges {
		if slices.Contains(current, b.ID) {
			continue
		}
		if b.unlocks(s) {
			out = append(out, b)
		}
	}
	return out
}
