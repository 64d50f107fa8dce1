package practice

import (
	"context"
	"slices"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	prac "github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	"github.com/pawsitive/mathcat/internal/standards"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

// Options selects which problems the screen serves.
type Options struct {
	// StandardID pins practice to one standard.
	StandardID string
	// Weak picks each problem from the player's weakest standard.
	Weak bool
	// First is served before any generated problem.
	First *problemgen.Problem
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseChecking
	phaseRevealed
	phaseFailed
)

// PracticeScreen serves problems one at a time inside a study session.
type PracticeScreen struct {
	env     screen.Env
	opts    Options
	phase   phase
	attempt *prac.Attempt
	input   components.TextInput
	spin    spinner.Model

	// feedback is the most recent answer result; lastAnswer its input.
	feedback   prac.Feedback
	lastAnswer string
	showHint   bool
	errMsg     string

	sessionID string
	solved    int
	correct   int
	worked    []string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.InputCapturer = (*PracticeScreen)(nil)

// New creates a PracticeScreen.
func New(env screen.Env, opts Options) *PracticeScreen {
	return &PracticeScreen{
		env:   env,
		opts:  opts,
		input: components.NewTextInput("Type your answer...", true, 32),
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.startSession(), s.input.Init(), s.spin.Tick}
	if s.opts.First != nil {
		first := s.opts.First
		cmds = append(cmds, func() tea.Msg { return problemReadyMsg{Problem: first} })
	} else {
		cmds = append(cmds, s.nextProblem())
	}
	return tea.Batch(cmds...)
}

// Title names the pinned standard, if any.
func (s *PracticeScreen) Title() string {
	if std, err := standards.Get(s.opts.StandardID); err == nil {
		return "Practice · " + std.Code
	}
	return "Practice"
}

// CapturesEsc is always true: leaving closes the study session first.
func (s *PracticeScreen) CapturesEsc() bool { return true }

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Done"},
		}
	case phaseRevealed, phaseFailed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next problem"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Done"}}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		s.sessionID = msg.ID
		return s, nil

	case problemReadyMsg:
		return s.handleProblem(msg)

	case answerCheckedMsg:
		return s.handleChecked(msg)

	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseChecking {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, s.finish()
	case "enter":
		switch s.phase {
		case phaseAnswering:
			return s.submit()
		case phaseRevealed, phaseFailed:
			s.phase = phaseLoading
			s.errMsg = ""
			return s, tea.Batch(s.nextProblem(), s.spin.Tick)
		}
		return s, nil
	case "tab":
		if s.phase == phaseAnswering && s.attempt != nil && s.attempt.Problem().Hint != "" {
			s.showHint = !s.showHint
		}
		return s, nil
	}

	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleProblem(msg problemReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseFailed
		s.errMsg = "Couldn't find a problem: " + msg.Err.Error()
		return s, nil
	}
	s.attempt = s.env.Practice.Begin(s.env.UserID, msg.Problem)
	s.phase = phaseAnswering
	s.feedback = prac.Feedback{}
	s.lastAnswer = ""
	s.showHint = false
	s.input.Reset()
	return s, s.input.Init()
}

func (s *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	attempt := s.attempt
	s.phase = phaseChecking
	s.errMsg = ""
	return s, tea.Batch(s.spin.Tick, func() tea.Msg {
		fb, err := attempt.Answer(context.Background(), answer)
		return answerCheckedMsg{Answer: answer, Feedback: fb, Err: err}
	})
}

func (s *PracticeScreen) handleChecked(msg answerCheckedMsg) (screen.Screen, tea.Cmd) {
	s.phase = phaseAnswering
	if msg.Err != nil {
		// The attempt is still open; the same answer can be sent again.
		s.errMsg = "Couldn't save your answer. Press Enter to try again."
		return s, nil
	}

	fb := msg.Feedback
	if fb.Ignored {
		return s, nil
	}

	s.feedback = fb
	s.lastAnswer = msg.Answer
	if fb.Retry {
		s.showHint = true
		s.input.Reset()
		return s, nil
	}

	s.phase = phaseRevealed
	s.input.Submit(fb.Correct)
	s.solved++
	if fb.Correct {
		s.correct++
	}
	if id := s.attempt.Problem().StandardID; !slices.Contains(s.worked, id) {
		s.worked = append(s.worked, id)
	}

	if out := fb.Outcome; out != nil {
		st := screen.StatusMsg{
			Level:  out.Result.LevelInfo.Level,
			XP:     out.Record.XP,
			Streak: out.Record.CurrentStreak,
		}
		return s, func() tea.Msg { return st }
	}
	return s, nil
}

func (s *PracticeScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := s.env.Practice.StartSession(context.Background(), s.env.UserID)
		if err != nil {
			return nil
		}
		return sessionStartedMsg{ID: sess.ID}
	}
}

func (s *PracticeScreen) nextProblem() tea.Cmd {
	opts := s.opts
	return func() tea.Msg {
		p, err := s.env.Practice.NextProblem(context.Background(), s.env.UserID, opts.StandardID, opts.Weak)
		return problemReadyMsg{Problem: p, Err: err}
	}
}

// finish closes the study session, crediting its time, and leaves the
// screen. A failed close still leaves.
func (s *PracticeScreen) finish() tea.Cmd {
	id, worked := s.sessionID, slices.Clone(s.worked)
	return func() tea.Msg {
		if id != "" {
			_, _, _ = s.env.Practice.EndSession(context.Background(), id, worked)
		}
		return router.PopScreenMsg{}
	}
}
