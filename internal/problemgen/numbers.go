package problemgen

import (
	"fmt"
	"strconv"
)

// addSubtractIntegers: 7-ns-1.
func addSubtractIntegers(r Rand) Problem {
	a := randInt(r, -15, 15)
	b := randInt(r, -15, 15)
	op := choice(r, []string{"+", "-"})

	result := a + b
	hint := "When adding, same signs add and keep the sign. Different signs subtract and keep the sign of the larger absolute value."
	if op == "-" {
		result = a - b
		hint = "Subtracting a number is the same as adding its opposite."
	}
	expr := fmt.Sprintf("%s %s %s", signed(a), op, signed(b))
	answer := strconv.Itoa(result)

	return Problem{
		StandardID:        "7-ns-1",
		Question:          "Calculate: " + expr,
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer),
		Hint:              hint,
		Explanation:       fmt.Sprintf("%s = %d", expr, result),
		Difficulty:        DifficultyEasy,
	}
}

// Nonzero divisors only.
var signedFactors = []int{-6, -5, -4, -3, -2, 2, 3, 4, 5, 6}

// multiplyDivideIntegers: 7-ns-2. Division problems are built from a
// product so the quotient is always an integer.
func multiplyDivideIntegers(r Rand) Problem {
	a := randInt(r, -12, 12)
	b := choice(r, signedFactors)
	op := choice(r, []string{"×", "÷"})

	var result int
	var question string
	if op == "×" {
		result = a * b
		question = fmt.Sprintf("Calculate: %s × %s", signed(a), signed(b))
	} else {
		question = fmt.Sprintf("Calculate: %d ÷ %s", a*b, signed(b))
		result = a
	}
	answer := strconv.Itoa(result)

	return Problem{
		StandardID:        "7-ns-2",
		Question:          question,
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer),
		Hint:              "Same signs give positive. Different signs give negative.",
		Explanation:       fmt.Sprintf("Remember: positive × positive = positive, negative × negative = positive, positive × negative = negative. The answer is %d.", result),
		Difficulty:        DifficultyEasy,
	}
}

// moneyWordProblem: 7-ns-3.
func moneyWordProblem(r Rand) Problem {
	start := randInt(r, 50, 200)
	spent := randInt(r, 10, 40)
	earned := randInt(r, 20, 60)
	final := start - spent + earned
	answer := strconv.Itoa(final)

	return Problem{
		StandardID:        "7-ns-3",
		Question:          fmt.Sprintf("You have $%d. You spend $%d on lunch and then earn $%d from a chore. How much money do you have now?", start, spent, earned),
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer, "$"+answer),
		Hint:              "Start with the initial amount, subtract what you spent, and add what you earned.",
		Explanation:       fmt.Sprintf("$%d - $%d + $%d = $%d", start, spent, earned, final),
		Difficulty:        DifficultyEasy,
	}
}
