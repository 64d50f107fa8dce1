package problemgen

// Difficulty is a coarse difficulty label attached to each problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem is a generated practice problem ready for display.
// Problems are transient: they are never persisted verbatim.
type Problem struct {
	// ID is a unique identifier assigned at generation time.
	ID string `json:"id"`

	// StandardID is the catalog standard this problem exercises.
	StandardID string `json:"standardId"`

	// Question is the prompt shown to the learner.
	Question string `json:"question"`

	// CorrectAnswer is the canonical answer. It always passes CheckAnswer.
	CorrectAnswer string `json:"correctAnswer"`

	// AcceptableAnswers lists textual variants accepted as correct.
	// Always includes CorrectAnswer.
	AcceptableAnswers []string `json:"acceptableAnswers"`

	// Hint is shown after a first wrong try.
	Hint string `json:"hint"`

	// Explanation is a worked solution shown after the problem is finished.
	Explanation string `json:"explanation"`

	Difficulty Difficulty `json:"difficulty"`
}

// MasteryLevel is the per-standard mastery input used for weak-area selection.
type MasteryLevel struct {
	StandardID string
	Mastery    int
}
