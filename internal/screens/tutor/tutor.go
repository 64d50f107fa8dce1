package tutor

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	practicescreen "github.com/pawsitive/mathcat/internal/screens/practice"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

type historyLoadedMsg struct {
	Messages []player.ChatMessage
	Err      error
}

type replyMsg struct {
	Messages []player.ChatMessage
	Problem  *problemgen.Problem
	Err      error
}

type clearedMsg struct {
	Err error
}

// TutorScreen is the chat with the rule-based tutor. When a reply carries
// a practice problem it can be opened in the practice screen.
type TutorScreen struct {
	env      screen.Env
	vp       viewport.Model
	input    components.TextInput
	messages []player.ChatMessage
	pending  *problemgen.Problem
	waiting  bool
	errMsg   string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates a new TutorScreen.
func New(env screen.Env) *TutorScreen {
	return &TutorScreen{
		env:   env,
		vp:    viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		input: components.NewTextInput("Ask about a math topic...", false, 500),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	load := func() tea.Msg {
		msgs, err := s.env.Chat.History(context.Background(), s.env.UserID)
		return historyLoadedMsg{Messages: msgs, Err: err}
	}
	return tea.Batch(load, s.input.Init())
}

func (s *TutorScreen) Title() string {
	return "Tutor"
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+L", Description: "Clear"},
	}
	if s.pending != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Try the problem"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Couldn't load the chat: " + msg.Err.Error()
			return s, nil
		}
		s.messages = msg.Messages
		s.refresh()
		return s, nil

	case replyMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errMsg = "Couldn't send that: " + msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.messages = append(s.messages, msg.Messages...)
		s.pending = msg.Problem
		s.refresh()
		return s, nil

	case clearedMsg:
		if msg.Err != nil {
			s.errMsg = "Couldn't clear the chat: " + msg.Err.Error()
			return s, nil
		}
		s.messages, s.pending = nil, nil
		return s, s.Init()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "ctrl+p":
			return s, s.openProblem()
		case "ctrl+l":
			return s, s.clear()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.vp, cmd = s.vp.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TutorScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting {
		return nil
	}
	s.waiting = true
	s.input.Reset()
	return func() tea.Msg {
		ex, err := s.env.Chat.Send(context.Background(), s.env.UserID, text)
		if err != nil {
			return replyMsg{Err: err}
		}
		return replyMsg{Messages: []player.ChatMessage{ex.Student, ex.Tutor}, Problem: ex.Problem}
	}
}

func (s *TutorScreen) openProblem() tea.Cmd {
	if s.pending == nil {
		return nil
	}
	next := practicescreen.New(s.env, practicescreen.Options{
		StandardID: s.pending.StandardID,
		First:      s.pending,
	})
	s.pending = nil
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *TutorScreen) clear() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{Err: s.env.Chat.Clear(context.Background(), s.env.UserID)}
	}
}

// refresh re-renders the transcript into the viewport and scrolls to the
// latest message.
func (s *TutorScreen) refresh() {
	s.vp.SetContent(renderTranscript(s.messages, s.vp.Width()))
	s.vp.GotoBottom()
}

func (s *TutorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	footer := []string{"> " + s.input.View()}
	if s.waiting {
		footer = append(footer, theme.Hint.Render("🐱 thinking..."))
	}
	if s.pending != nil {
		footer = append(footer, theme.Hint.Render("📝 Press Ctrl+P to try the practice problem."))
	}
	if s.errMsg != "" {
		footer = append(footer, theme.Incorrect.Render(s.errMsg))
	}
	bottom := strings.Join(footer, "\n")

	vpHeight := max(height-lipgloss.Height(bottom)-2, 3)
	if s.vp.Width() != cw || s.vp.Height() != vpHeight {
		s.vp.SetWidth(cw)
		s.vp.SetHeight(vpHeight)
		s.refresh()
	}

	body := s.vp.View() + "\n\n" + bottom
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}

func renderTranscript(msgs []player.ChatMessage, width int) string {
	bubbleWidth := max(width*3/4, 20)
	var parts []string
	for _, m := range msgs {
		if m.Role == player.RoleUser {
			bubble := theme.StudentBubble.Width(bubbleWidth).Render(m.Content)
			parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
			continue
		}
		parts = append(parts, theme.TutorBubble.Width(bubbleWidth).Render("🐱 "+m.Content))
	}
	return strings.Join(parts, "\n\n")
}
