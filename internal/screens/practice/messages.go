package practice

import (
	prac "github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
)

// problemReadyMsg is sent when the next problem has been picked.
type problemReadyMsg struct {
	Problem *problemgen.Problem
	Err     error
}

// sessionStartedMsg carries the study session opened for this screen.
type sessionStartedMsg struct {
	ID string
}

// answerCheckedMsg is sent after an answer has been checked and, when
// final, recorded.
type answerCheckedMsg struct {
	Answer   string
	Feedback prac.Feedback
	Err      error
}
