package rewards

import "fmt"

// XP awarded per event.
const (
	XPCorrectAnswer     = 10
	XPFirstProblemToday = 15
	XPStreakBonus3      = 5
	XPStreakBonus5      = 10
	XPStreakBonus10     = 25
)

// XPForAnswer computes the XP for one answer and a human-readable line per
// applied item. Incorrect answers earn nothing. At most one streak bonus
// applies: exactly 3, exactly 5, exactly 10, or any larger multiple of 5.
func XPForAnswer(correct bool, streak int, firstToday bool) (int, []string) {
	if !correct {
		return 0, []string{}
	}

	xp := XPCorrectAnswer
	breakdown := []string{fmt.Sprintf("+%d Correct answer", XPCorrectAnswer)}

	if firstToday {
		xp += XPFirstProblemToday
		breakdown = append(breakdown, fmt.Sprintf("+%d First problem today!", XPFirstProblemToday))
	}

	switch {
	case streak == 3:
		xp += XPStreakBonus3
		breakdown = append(breakdown, fmt.Sprintf("+%d 3 streak bonus! 🔥", XPStreakBonus3))
	case streak == 5:
		xp += XPStreakBonus5
		breakdown = append(breakdown, fmt.Sprintf("+%d 5 streak bonus! 🔥🔥", XPStreakBonus5))
	case streak == 10:
		xp += XPStreakBonus10
		breakdown = append(breakdown, fmt.Sprintf("+%d 10 streak bonus! 🔥🔥🔥", XPStreakBonus10))
	case streak > 10 && streak%5 == 0:
		xp += XPStreakBonus10
		breakdown = append(breakdown, fmt.Sprintf("+%d %d streak! 🔥🔥🔥", XPStreakBonus10, streak))
	}

	return xp, breakdown
}
