package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

// recentLimit is how many attempts the history section lists.
const recentLimit = 8

type progressLoadedMsg struct {
	Profile  *practice.Profile
	Attempts []player.Attempt
	Err      error
}

// ProgressScreen shows the player's stats, domain mastery and recent
// answers.
type ProgressScreen struct {
	env      screen.Env
	profile  *practice.Profile
	attempts []player.Attempt
	showAll  bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(env screen.Env) *ProgressScreen {
	return &ProgressScreen{env: env}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		prof, err := s.env.Practice.Profile(ctx, s.env.UserID)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}
		attempts, err := s.env.Practice.RecentAttempts(ctx, s.env.UserID, recentLimit)
		if err != nil {
			return progressLoadedMsg{Profile: prof}
		}
		return progressLoadedMsg{Profile: prof, Attempts: attempts}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Domains / Recent"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.profile, s.attempts = msg.Profile, msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			s.showAll = !s.showAll
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	cw := components.ContentWidth(width)
	sections := []string{s.renderStats(cw)}
	if s.showAll {
		sections = append(sections, s.renderRecent(cw))
	} else {
		sections = append(sections, s.renderDomains(cw))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *ProgressScreen) renderStats(cw int) string {
	p := s.profile
	title := theme.Title.
		Render(fmt.Sprintf("%s Level %d · %s · %d XP", p.Level.Icon, p.Level.Level, p.Level.Title, p.Player.XP))

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text)
	row := func(label, value string) string {
		return dim.Render(fmt.Sprintf("%-20s", label)) + val.Render(value)
	}

	lines := []string{
		title,
		"",
		row("Problems solved", fmt.Sprintf("%d (%d correct)", p.Stats.TotalProblems, p.Stats.TotalCorrect)),
		row("Accuracy", fmt.Sprintf("%d%%", p.Stats.Accuracy)),
		row("Standards mastered", fmt.Sprintf("%d", p.Stats.StandardsMastered)),
		row("Streak", fmt.Sprintf("%d (best %d)", p.Player.CurrentStreak, p.Player.BestStreak)),
		row("Study time", fmt.Sprintf("%d min (%d this week)", p.Player.TotalStudyMinutes, p.Player.WeeklyStudyMinutes)),
		row("Badges", fmt.Sprintf("%d", len(p.Player.Badges))),
	}
	return components.BorderedCard(strings.Join(lines, "\n"), cw, theme.Primary)
}

func (s *ProgressScreen) renderDomains(cw int) string {
	lines := []string{theme.Section.Render("Domains")}
	for _, d := range s.profile.Domains {
		name := lipgloss.NewStyle().Foreground(theme.DomainColor(d.Domain.Code)).
			Render(fmt.Sprintf("%-34s", truncate(d.Domain.Name, 34)))
		bar := components.MasteryBar("", d.Average, max(cw-40, 10))
		lines = append(lines, name+" "+bar.View())
		if d.Practiced > 0 {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("  %d practiced · %d mastered", d.Practiced, d.Mastered)))
		}
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *ProgressScreen) renderRecent(cw int) string {
	lines := []string{theme.Section.Render("Recent answers")}
	if len(s.attempts) == 0 {
		lines = append(lines, theme.Hint.Render("No answers yet. Start practicing!"))
	}
	for _, a := range s.attempts {
		mark := theme.Correct.Render("✓")
		if !a.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		when := theme.Hint.Render(a.CreatedAt.Format("Jan 02 15:04"))
		q := truncate(a.Question, max(cw-22, 10))
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, when, theme.Body.Render(q)))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
