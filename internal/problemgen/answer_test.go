package problemgen

import "testing"

func TestCheckAnswer_Integer(t *testing.T) {
	p := &Problem{CorrectAnswer: "42", AcceptableAnswers: []string{"42"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{" 42 ", true},
		{"042", true},
		{"42.0", true},
		{"$42", true},
		{"43", false},
		{"", false},
		{"   ", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckAnswer(42, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_NumericTolerance(t *testing.T) {
	p := &Problem{CorrectAnswer: "50.24", AcceptableAnswers: []string{"50.24"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"50.24", true},
		{"50.245", true},
		{"50.235", true},
		{"50.26", false},
		{"50.22", false},
		{"inf", false},
		{"nan", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckAnswer(50.24, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Variants(t *testing.T) {
	p := &Problem{
		CorrectAnswer:     "12x + 7",
		AcceptableAnswers: []string{"12x + 7", "12x+7", "7 + 12x"},
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"12x + 7", true},
		{"12X+7", true},
		{"  12 x + 7 ", true},
		{"7 + 12x", true},
		{"7+12x", true},
		{"12x + 8", false},
		{"12", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckAnswer(12x + 7, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_Currency(t *testing.T) {
	p := &Problem{CorrectAnswer: "89.25", AcceptableAnswers: []string{"89.25", "$89.25"}}

	for _, in := range []string{"89.25", "$89.25", "$ 89.25", "89.250"} {
		if !CheckAnswer(p, in) {
			t.Errorf("CheckAnswer(89.25, %q) = false, want true", in)
		}
	}
}

func TestCheckAnswer_Fraction(t *testing.T) {
	p := &Problem{CorrectAnswer: "1/2", AcceptableAnswers: []string{"1/2", "3/6", "0.5"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"1/2", true},
		{"3/6", true},
		{"0.5", true},
		{"2/4", false}, // not listed, and fractions are not parsed as numbers
		{".5", false},  // canonical "1/2" is not a float
		{"1/3", false},
		{"1/0", false},
		{"a/b", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckAnswer(1/2, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCheckAnswer_FractionAgainstDecimal(t *testing.T) {
	p := &Problem{CorrectAnswer: "0.33"}

	if CheckAnswer(p, "1/3") {
		t.Error(`CheckAnswer(0.33, "1/3") = true, want false`)
	}
	if !CheckAnswer(p, "0.333") {
		t.Error(`CheckAnswer(0.33, "0.333") = false, want true`)
	}
}

func TestCheckAnswer_YesNo(t *testing.T) {
	p := &Problem{CorrectAnswer: "yes", AcceptableAnswers: []string{"yes", "y", "true"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"Yes", true},
		{"Y", true},
		{"TRUE", true},
		{"no", false},
		{"yess", false},
	}

	for _, tc := range tests {
		got := CheckAnswer(p, tc.input)
		if got != tc.want {
			t.Errorf("CheckAnswer(yes, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  X = 5 ", "x=5"},
		{"$12.50", "12.50"},
		{"12\tcm³", "12cm³"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
