package problemgen

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case p.Question == "":
		return fail("question is empty")
	case len(p.Question) > 500:
		return fail("question exceeds 500 characters")
	case p.CorrectAnswer == "":
		return fail("correct_answer is empty")
	case p.Explanation == "":
		return fail("explanation is empty")
	case len(p.Explanation) > 1000:
		return fail("explanation exceeds 1000 characters")
	case p.Hint == "":
		return fail("hint is empty")
	case !p.Difficulty.Valid():
		return fail(`difficulty must be "easy", "medium", or "hard"`)
	case input.Standard.ID != "" && p.StandardID != input.Standard.ID:
		return &ValidationError{Validator: v.Name(), Message: "standard id mismatch", Retryable: false}
	}
	return nil
}
