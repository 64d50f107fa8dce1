package problemgen

import "testing"

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
		Retryable: true,
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "self-check"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func validProblem() *Problem {
	return &Problem{
		StandardID:        "7-g-5",
		Question:          "What is the complement of 30°?",
		CorrectAnswer:     "60",
		AcceptableAnswers: []string{"60", "60°"},
		Hint:              "Complementary angles add to 90°.",
		Explanation:       "90 - 30 = 60",
		Difficulty:        DifficultyEasy,
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Problem)
		ok     bool
	}{
		{"valid", func(p *Problem) {}, true},
		{"empty question", func(p *Problem) { p.Question = "" }, false},
		{"empty answer", func(p *Problem) { p.CorrectAnswer = "" }, false},
		{"empty hint", func(p *Problem) { p.Hint = "" }, false},
		{"empty explanation", func(p *Problem) { p.Explanation = "" }, false},
		{"bad difficulty", func(p *Problem) { p.Difficulty = "extreme" }, false},
	}
	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProblem()
			tt.mutate(p)
			err := v.Validate(p, GenerateInput{})
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSelfCheckValidator(t *testing.T) {
	v := &SelfCheckValidator{}
	if err := v.Validate(validProblem(), GenerateInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := validProblem()
	p.AcceptableAnswers = append(p.AcceptableAnswers, "  ")
	if err := v.Validate(p, GenerateInput{}); err == nil {
		t.Error("expected error for blank variant")
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 8); got != "None" {
		t.Errorf("got %q, want None", got)
	}
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("got %q", got)
	}
}
