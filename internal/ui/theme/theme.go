package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/standards"
)

// Color palette: warm cat colors on a dark background
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber (tabby)
	Secondary = lipgloss.Color("#A855F7") // Purple
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Chat bubbles
var (
	StudentBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	TutorBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)
)

// DomainColor returns the display color of a domain.
func DomainColor(code standards.DomainCode) color.Color {
	return lipgloss.Color(standards.DomainColor(code))
}

// MasteryColor shades a 0-100 mastery value: red below 50, amber below
// 80, green from 80.
func MasteryColor(mastery int) color.Color {
	switch {
	case mastery >= 80:
		return Success
	case mastery >= 50:
		return Primary
	default:
		return Error
	}
}
