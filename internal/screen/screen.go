package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/tutor"
	"github.com/pawsitive/mathcat/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that use Esc themselves while
// a text field is focused.
type InputCapturer interface {
	CapturesEsc() bool
}

// StatusMsg replaces the player summary in the header.
type StatusMsg layout.Status

// Env is the set of services screens work against.
type Env struct {
	Practice *practice.Service
	Chat     *tutor.Chat
	UserID   string
}

// LoadStatus returns a command that reads the player and emits a
// StatusMsg. Read errors leave the header unchanged.
func (e Env) LoadStatus() tea.Cmd {
	return func() tea.Msg {
		prof, err := e.Practice.Profile(context.Background(), e.UserID)
		if err != nil {
			return nil
		}
		return StatusMsg{Level: prof.Level.Level, XP: prof.Player.XP, Streak: prof.Player.CurrentStreak}
	}
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
