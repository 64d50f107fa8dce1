package problemgen

import "fmt"

// SelfCheckValidator checks that the canonical answer and every listed
// variant pass CheckAnswer for the problem itself.
type SelfCheckValidator struct{}

func (v *SelfCheckValidator) Name() string { return "self-check" }

func (v *SelfCheckValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	if !CheckAnswer(p, p.CorrectAnswer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct answer %q does not pass the checker", p.CorrectAnswer),
			Retryable: true,
		}
	}
	for _, alt := range p.AcceptableAnswers {
		if Normalize(alt) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "acceptable answers contain an empty entry",
				Retryable: true,
			}
		}
	}
	return nil
}
