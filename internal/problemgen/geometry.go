package problemgen

import (
	"fmt"
	"math"
	"strconv"
)

// piApprox is the value of π learners are told to use.
const piApprox = 3.14

// round2 rounds f to the nearest hundredth.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// circle: 7-g-4. The canonical answer uses π ≈ 3.14; answers computed
// with full-precision π are accepted as variants.
func circle(r Rand) Problem {
	radius := randInt(r, 2, 10)
	rf := float64(radius)
	kind := choice(r, []string{"area", "circumference"})

	var exact, approx float64
	var question, hint, explanation string
	if kind == "area" {
		exact = round2(math.Pi * rf * rf)
		approx = round2(piApprox * rf * rf)
		question = fmt.Sprintf("Find the area of a circle with radius %d. Use π ≈ 3.14 and round to the nearest hundredth.", radius)
		hint = "Area = π × r². Multiply π by the radius squared."
		explanation = fmt.Sprintf("Area = π × %d² = 3.14 × %d = %s", radius, radius*radius, num(approx))
	} else {
		exact = round2(2 * math.Pi * rf)
		approx = round2(2 * piApprox * rf)
		question = fmt.Sprintf("Find the circumference of a circle with radius %d. Use π ≈ 3.14 and round to the nearest hundredth.", radius)
		hint = "Circumference = 2 × π × r. Multiply 2, π, and the radius."
		explanation = fmt.Sprintf("Circumference = 2 × π × %d = 2 × 3.14 × %d = %s", radius, radius, num(approx))
	}
	answer := num(approx)

	return Problem{
		StandardID:    "7-g-4",
		Question:      question,
		CorrectAnswer: answer,
		AcceptableAnswers: variants(
			answer,
			num(exact),
			fixed(approx, 2),
			fixed(exact, 2),
		),
		Hint:        hint,
		Explanation: explanation,
		Difficulty:  DifficultyMedium,
	}
}

// prismVolume: 7-g-6.
func prismVolume(r Rand) Problem {
	length := randInt(r, 3, 10)
	width := randInt(r, 3, 10)
	height := randInt(r, 2, 8)
	volume := length * width * height
	answer := strconv.Itoa(volume)

	return Problem{
		StandardID:        "7-g-6",
		Question:          fmt.Sprintf("Find the volume of a rectangular prism with length %d cm, width %d cm, and height %d cm.", length, width, height),
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer, answer+" cm³", answer+" cubic cm"),
		Hint:              "Volume of a rectangular prism = length × width × height",
		Explanation:       fmt.Sprintf("Volume = %d × %d × %d = %d cubic cm", length, width, height, volume),
		Difficulty:        DifficultyEasy,
	}
}

var drawingScales = []int{2, 4, 5, 10}

// scaleDrawing: 7-g-1. Asks either for the actual length or the drawing length.
func scaleDrawing(r Rand) Problem {
	scale := choice(r, drawingScales)
	actual := randInt(r, 3, 12) * scale
	drawing := actual / scale
	kind := choice(r, []string{"find-actual", "find-drawing"})

	if kind == "find-actual" {
		measure := randInt(r, 2, 8)
		result := measure * scale
		answer := strconv.Itoa(result)
		return Problem{
			StandardID:        "7-g-1",
			Question:          fmt.Sprintf("A scale drawing uses a scale of 1 inch = %d feet. If a room is %d inches long on the drawing, what is the actual length in feet?", scale, measure),
			CorrectAnswer:     answer,
			AcceptableAnswers: variants(answer, answer+" feet", answer+" ft"),
			Hint:              "Multiply the drawing measurement by the scale factor.",
			Explanation:       fmt.Sprintf("%d inches × %d feet per inch = %d feet", measure, scale, result),
			Difficulty:        DifficultyMedium,
		}
	}

	answer := strconv.Itoa(drawing)
	return Problem{
		StandardID:        "7-g-1",
		Question:          fmt.Sprintf("A scale drawing uses a scale of 1 inch = %d feet. If a wall is actually %d feet long, how many inches long should it be on the drawing?", scale, actual),
		CorrectAnswer:     answer,
		AcceptableAnswers: variants(answer, answer+" inches", answer+" in"),
		Hint:              "Divide the actual measurement by the scale factor.",
		Explanation:       fmt.Sprintf("%d feet ÷ %d feet per inch = %d inches", actual, scale, drawing),
		Difficulty:        DifficultyMedium,
	}
}
