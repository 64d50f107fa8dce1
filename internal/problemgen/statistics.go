package problemgen

import "fmt"

// marbleProbability: 7-sp-5.
func marbleProbability(r Rand) Problem {
	favorable := randInt(r, 1, 6)
	total := randInt(r, favorable+2, 12)
	g := int(gcd(int64(favorable), int64(total)))
	n, d := favorable/g, total/g
	decimal := round2(float64(favorable) / float64(total))
	answer := fmt.Sprintf("%d/%d", n, d)

	return Problem{
		StandardID:    "7-sp-5",
		Question:      fmt.Sprintf("A bag contains %d marbles. %d of them are red. What is the probability of randomly selecting a red marble? Express as a fraction.", total, favorable),
		CorrectAnswer: answer,
		AcceptableAnswers: variants(
			answer,
			fmt.Sprintf("%d/%d", favorable, total),
			num(decimal),
		),
		Hint:        "Probability = favorable outcomes ÷ total outcomes",
		Explanation: fmt.Sprintf("P(red) = %d/%d = %s", favorable, total, answer),
		Difficulty:  DifficultyEasy,
	}
}

type samplingScenario struct {
	population string
	method     string
	good       bool
	reason     string
}

var samplingScenarios = []samplingScenario{
	{
		population: "students at a school",
		method:     "randomly selecting 50 students from all grades",
		good:       true,
		reason:     "This is a random sample that represents all grades fairly.",
	},
	{
		population: "students at a school",
		method:     "asking only students in the cafeteria at lunch",
		good:       false,
		reason:     "This only includes students who eat in the cafeteria and misses others.",
	},
	{
		population: "voters in a city",
		method:     "randomly calling phone numbers from the city directory",
		good:       true,
		reason:     "Random selection from the population gives everyone a fair chance.",
	},
	{
		population: "voters in a city",
		method:     "asking people at a political rally",
		good:       false,
		reason:     "Rally attendees likely share similar views and don't represent all voters.",
	},
}

// representativeSample: 7-sp-1. Yes/no question about a sampling method.
func representativeSample(r Rand) Problem {
	s := choice(r, samplingScenarios)

	answers := []string{"no", "n", "false"}
	verdict := "No"
	if s.good {
		answers = []string{"yes", "y", "true"}
		verdict = "Yes"
	}

	return Problem{
		StandardID:        "7-sp-1",
		Question:          fmt.Sprintf("To learn about %s, a researcher uses this method: %s. Is this a good representative sample? Answer \"yes\" or \"no\".", s.population, s.method),
		CorrectAnswer:     answers[0],
		AcceptableAnswers: answers,
		Hint:              "A good sample is random and gives everyone in the population an equal chance of being selected.",
		Explanation:       fmt.Sprintf("%s. %s", verdict, s.reason),
		Difficulty:        DifficultyEasy,
	}
}
