package practice

import (
	"context"
	"errors"
	"strings"

	"github.com/pawsitive/mathcat/internal/problemgen"
)

// MaxTries is how many answers a problem accepts before it is revealed.
const MaxTries = 2

// ErrAttemptFinished is returned when answering a problem that has
// already been recorded.
var ErrAttemptFinished = errors.New("attempt already finished")

// Attempt is one problem being worked on. A first wrong answer shows the
// hint and is not recorded; a correct answer, or a second wrong one, is
// recorded through Service.Submit.
type Attempt struct {
	svc     *Service
	userID  string
	problem *problemgen.Problem
	tries   int
	done    bool
}

// Feedback is what the player sees after answering.
type Feedback struct {
	// Ignored is set for blank input, which does not use up a try.
	Ignored bool
	Correct bool
	// Retry means the answer was wrong but another try remains.
	Retry bool
	Hint  string
	// Explanation is revealed once the problem is finished.
	Explanation string
	// Outcome is set when the answer was recorded.
	Outcome *Outcome
}

// Begin starts an attempt at p for the player.
func (s *Service) Begin(userID string, p *problemgen.Problem) *Attempt {
	return &Attempt{svc: s, userID: userID, problem: p}
}

// Problem returns the problem being attempted.
func (a *Attempt) Problem() *problemgen.Problem { return a.problem }

// Tries returns the number of answers counted so far.
func (a *Attempt) Tries() int { return a.tries }

// Done reports whether the attempt has been recorded.
func (a *Attempt) Done() bool { return a.done }

// Answer submits raw. On a store error the attempt stays open and the
// same answer may be submitted again.
func (a *Attempt) Answer(ctx context.Context, raw string) (Feedback, error) {
	if a.done {
		return Feedback{}, ErrAttemptFinished
	}
	if strings.TrimSpace(raw) == "" {
		return Feedback{Ignored: true}, nil
	}

	correct := problemgen.CheckAnswer(a.problem, raw)
	if !correct && a.tries+1 < MaxTries {
		a.tries++
		return Feedback{Retry: true, Hint: a.problem.Hint}, nil
	}

	out, err := a.svc.Submit(ctx, Submission{UserID: a.userID, Problem: a.problem, Answer: raw})
	if err != nil {
		return Feedback{}, err
	}
	a.tries++
	a.done = true
	return Feedback{
		Correct:     out.Correct,
		Explanation: a.problem.Explanation,
		Outcome:     out,
	}, nil
}
