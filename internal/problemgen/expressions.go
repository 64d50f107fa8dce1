package problemgen

import (
	"fmt"
	"strconv"
)

// combineLikeTerms: 7-ee-1.
func combineLikeTerms(r Rand) Problem {
	a := randInt(r, 2, 9)
	b := randInt(r, 2, 9)
	c := randInt(r, 1, 6)
	d := randInt(r, 1, 6)
	coef := a + b
	constant := c + d
	answer := fmt.Sprintf("%dx + %d", coef, constant)

	return Problem{
		StandardID:    "7-ee-1",
		Question:      fmt.Sprintf("Simplify: %dx + %d + %dx + %d", a, c, b, d),
		CorrectAnswer: answer,
		AcceptableAnswers: variants(
			answer,
			fmt.Sprintf("%dx+%d", coef, constant),
			fmt.Sprintf("%d + %dx", constant, coef),
		),
		Hint:        "Combine the x terms together and the constant terms together.",
		Explanation: fmt.Sprintf("%dx + %dx = %dx and %d + %d = %d. So the answer is %s.", a, b, coef, c, d, constant, answer),
		Difficulty:  DifficultyEasy,
	}
}

// oneStepEquation: 7-ee-4.
func oneStepEquation(r Rand) Problem {
	a := randInt(r, 2, 12)
	x := randInt(r, 2, 15)
	b := a * x
	answer := strconv.Itoa(x)

	return Problem{
		StandardID:        "7-ee-4",
		Question:          fmt.Sprintf("Solve for x: %dx = %d", a, b),
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer, "x = "+answer, "x="+answer),
		Hint:              "Divide both sides by the coefficient of x.",
		Explanation:       fmt.Sprintf("Divide both sides by %d: x = %d ÷ %d = %d", a, b, a, x),
		Difficulty:        DifficultyEasy,
	}
}
