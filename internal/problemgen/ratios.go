package problemgen

import (
	"fmt"
	"strconv"
)

// unitRate: 7-rp-1.
func unitRate(r Rand) Problem {
	miles := randInt(r, 2, 10)
	hours := randInt(r, 2, 5)
	rate := float64(miles) / float64(hours)
	rateStr := fixed(rate, 2)
	if miles%hours == 0 {
		rateStr = strconv.Itoa(miles / hours)
	}

	return Problem{
		StandardID:        "7-rp-1",
		Question:          fmt.Sprintf("A car travels %d miles in %d hours. What is the unit rate in miles per hour?", miles, hours),
		CorrectAnswer:     rateStr,
		AcceptableAnswers: variants(rateStr, num(rate), fixed(rate, 1)),
		Hint:              "Divide the total miles by the total hours to find miles per hour.",
		Explanation:       fmt.Sprintf("To find the unit rate, divide %d miles by %d hours: %d ÷ %d = %s miles per hour.", miles, hours, miles, hours, rateStr),
		Difficulty:        DifficultyEasy,
	}
}

// proportional: 7-rp-2.
func proportional(r Rand) Problem {
	k := randInt(r, 2, 8)
	x1 := randInt(r, 2, 5)
	y1 := x1 * k
	x2 := randInt(r, 6, 10)
	y2 := x2 * k
	answer := strconv.Itoa(y2)

	return Problem{
		StandardID:        "7-rp-2",
		Question:          fmt.Sprintf("If y is proportional to x, and y = %d when x = %d, what is y when x = %d?", y1, x1, x2),
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer),
		Hint:              "First find the constant of proportionality (k = y/x), then use y = kx.",
		Explanation:       fmt.Sprintf("The constant of proportionality k = %d/%d = %d. So when x = %d, y = %d × %d = %d.", y1, x1, k, x2, k, x2, y2),
		Difficulty:        DifficultyMedium,
	}
}

var salePercents = []int{10, 15, 20, 25, 30}

// percentOff: 7-rp-3.
func percentOff(r Rand) Problem {
	original := randInt(r, 20, 100) * 5
	percent := choice(r, salePercents)
	discount := float64(original*percent) / 100
	final := float64(original) - discount
	answer := num(final)

	return Problem{
		StandardID:    "7-rp-3",
		Question:      fmt.Sprintf("A shirt costs $%d. It is on sale for %d%% off. What is the sale price?", original, percent),
		CorrectAnswer: answer,
		AcceptableAnswers: variants(
			answer,
			"$"+answer,
			fixed(final, 2),
			"$"+fixed(final, 2),
		),
		Hint:        "Calculate the discount amount first, then subtract from the original price.",
		Explanation: fmt.Sprintf("Discount = %d%% of $%d = $%s. Sale price = $%d - $%s = $%s.", percent, original, num(discount), original, num(discount), answer),
		Difficulty:  DifficultyMedium,
	}
}
