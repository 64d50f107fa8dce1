package practice

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	prac "github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	"github.com/pawsitive/mathcat/internal/store"
)

func newTestEnv(t *testing.T) (screen.Env, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:screen_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := prac.NewService(st, problemgen.New(nil, problemgen.NewRand(7)))
	return screen.Env{Practice: svc, UserID: "kid"}, st
}

func testProblem() *problemgen.Problem {
	return &problemgen.Problem{
		ID:                "p1",
		StandardID:        "7-ns-1",
		Question:          "What is -3 + 7?",
		CorrectAnswer:     "4",
		AcceptableAnswers: []string{"4", "+4"},
		Hint:              "Start at -3 and move 7 to the right.",
		Explanation:       "-3 + 7 = 4",
		Difficulty:        problemgen.DifficultyEasy,
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeString(s *PracticeScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// collect runs cmd and every command nested in batches, returning the
// messages produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// submit presses Enter and feeds the checked answer back to the screen.
func submit(t *testing.T, s *PracticeScreen) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	for _, msg := range collect(cmd) {
		if checked, ok := msg.(answerCheckedMsg); ok {
			_, next := s.Update(checked)
			return next
		}
	}
	t.Fatal("enter did not produce an answer check")
	return nil
}

func loaded(t *testing.T) (*PracticeScreen, *store.Store) {
	t.Helper()
	env, st := newTestEnv(t)
	s := New(env, Options{})
	s.Update(problemReadyMsg{Problem: testProblem()})
	if s.phase != phaseAnswering {
		t.Fatalf("expected answering phase, got %v", s.phase)
	}
	return s, st
}

func TestCorrectAnswerIsRecorded(t *testing.T) {
	s, st := loaded(t)

	typeString(s, "4")
	cmd := submit(t, s)

	if s.phase != phaseRevealed {
		t.Fatalf("expected revealed phase, got %v", s.phase)
	}
	if !s.feedback.Correct {
		t.Error("expected correct feedback")
	}
	if s.solved != 1 || s.correct != 1 {
		t.Errorf("expected 1/1, got %d/%d", s.correct, s.solved)
	}

	var status *screen.StatusMsg
	for _, msg := range collect(cmd) {
		if sm, ok := msg.(screen.StatusMsg); ok {
			status = &sm
		}
	}
	if status == nil || status.XP == 0 {
		t.Fatalf("expected a status update with XP, got %+v", status)
	}

	attempts, err := st.RecentAttempts(context.Background(), "kid", 10)
	if err != nil {
		t.Fatalf("recent attempts: %v", err)
	}
	if len(attempts) != 1 || !attempts[0].IsCorrect {
		t.Errorf("expected one correct attempt, got %+v", attempts)
	}
}

func TestFirstWrongAnswerShowsHint(t *testing.T) {
	s, st := loaded(t)

	typeString(s, "10")
	submit(t, s)

	if s.phase != phaseAnswering {
		t.Fatalf("expected another try, got phase %v", s.phase)
	}
	if !s.feedback.Retry || !s.showHint {
		t.Error("expected retry feedback with the hint shown")
	}
	if s.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", s.input.Value())
	}
	if view := s.View(100, 30); !strings.Contains(view, "Start at -3") {
		t.Error("expected hint in view")
	}

	attempts, _ := st.RecentAttempts(context.Background(), "kid", 10)
	if len(attempts) != 0 {
		t.Errorf("first wrong try should not be recorded, got %d attempts", len(attempts))
	}

	typeString(s, "11")
	submit(t, s)

	if s.phase != phaseRevealed || s.feedback.Correct {
		t.Fatalf("expected revealed wrong answer, got phase %v correct %v", s.phase, s.feedback.Correct)
	}
	if view := s.View(100, 30); !strings.Contains(view, "The answer was 4") {
		t.Error("expected correct answer revealed in view")
	}
	attempts, _ = st.RecentAttempts(context.Background(), "kid", 10)
	if len(attempts) != 1 || attempts[0].IsCorrect {
		t.Errorf("expected one incorrect attempt, got %+v", attempts)
	}
}

func TestBlankAnswerIgnored(t *testing.T) {
	s, _ := loaded(t)

	submit(t, s)

	if s.phase != phaseAnswering {
		t.Errorf("expected answering phase, got %v", s.phase)
	}
	if s.attempt.Tries() != 0 {
		t.Errorf("blank answer should not use a try, got %d", s.attempt.Tries())
	}
}

func TestAnswerInputFiltersKeys(t *testing.T) {
	s, _ := loaded(t)

	typeString(s, "3/4!?")

	if got := s.input.Value(); got != "3/4" {
		t.Errorf("expected filtered input %q, got %q", "3/4", got)
	}
}

func TestTabTogglesHint(t *testing.T) {
	s, _ := loaded(t)

	s.Update(specialKey(tea.KeyTab))
	if !s.showHint {
		t.Error("expected hint shown after tab")
	}
	s.Update(specialKey(tea.KeyTab))
	if s.showHint {
		t.Error("expected hint hidden after second tab")
	}
}

func TestEnterAfterRevealLoadsNextProblem(t *testing.T) {
	s, _ := loaded(t)
	s.opts.StandardID = "7-rp-1"

	typeString(s, "4")
	submit(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseLoading {
		t.Fatalf("expected loading phase, got %v", s.phase)
	}

	var ready *problemReadyMsg
	for _, msg := range collect(cmd) {
		if m, ok := msg.(problemReadyMsg); ok {
			ready = &m
		}
	}
	if ready == nil || ready.Err != nil {
		t.Fatalf("expected a problem, got %+v", ready)
	}
	if ready.Problem.StandardID != "7-rp-1" {
		t.Errorf("expected 7-rp-1 problem, got %s", ready.Problem.StandardID)
	}

	s.Update(*ready)
	if s.phase != phaseAnswering || s.attempt.Problem() != ready.Problem {
		t.Error("expected the new problem to be active")
	}
}

func TestEscEndsSessionAndPops(t *testing.T) {
	s, st := loaded(t)
	s.Update(sessionStartedMsg{ID: startSession(t, s)})

	typeString(s, "4")
	submit(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", msgs[0])
	}

	sess, err := st.GetSession(context.Background(), s.sessionID)
	if err != nil || sess == nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.Open() {
		t.Error("expected session to be ended")
	}
	if len(sess.StandardsWorkedOn) != 1 || sess.StandardsWorkedOn[0] != "7-ns-1" {
		t.Errorf("expected worked standards [7-ns-1], got %v", sess.StandardsWorkedOn)
	}
}

func startSession(t *testing.T, s *PracticeScreen) string {
	t.Helper()
	for _, msg := range collect(s.startSession()) {
		if m, ok := msg.(sessionStartedMsg); ok {
			return m.ID
		}
	}
	t.Fatal("session did not start")
	return ""
}

func TestFirstProblemServedFromOptions(t *testing.T) {
	env, _ := newTestEnv(t)
	p := testProblem()
	s := New(env, Options{First: p})

	var ready *problemReadyMsg
	for _, msg := range collect(s.Init()) {
		if m, ok := msg.(problemReadyMsg); ok {
			ready = &m
		}
	}
	if ready == nil || ready.Problem != p {
		t.Fatal("expected the given problem to be served first")
	}
}
