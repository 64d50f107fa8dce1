package rewards

// DailyGoal is an informational target for the current day. Goals do not
// change XP.
type DailyGoal struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Target    int    `json:"target"`
	Current   int    `json:"current"`
	XPReward  int    `json:"xpReward"`
	Completed bool   `json:"completed"`
}

// DailyGoals builds today's goals from the player state. Counters from an
// earlier day count as zero.
func DailyGoals(s State, today string) []DailyGoal {
	problems, correct, streak := 0, 0, 0
	if s.LastProblemDate == today {
		problems = s.SessionCorrect + s.SessionWrong
		correct = s.SessionCorrect
		streak = s.CurrentStreak
	}

	return []DailyGoal{
		goal("daily_problems", "Solve 10 problems today", 10, problems, 25),
		goal("daily_correct", "Get 7 correct today", 7, correct, 30),
		goal("daily_streak", "Get a 5 streak", 5, streak, 20),
	}
}

func goal(id, name string, target, current, xp int) DailyGoal {
	return DailyGoal{
		ID:        id,
		Name:      name,
		Target:    target,
		Current:   min(current, target),
		XPReward:  xp,
		Completed: current >= target,
	}
}
