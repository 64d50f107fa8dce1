package badges

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

type badgesLoadedMsg struct {
	Owned    []string
	Unlocked map[string]time.Time
	Err      error
}

// BadgesScreen shows the badge catalog by category, unlocked badges first.
type BadgesScreen struct {
	env          screen.Env
	owned        []string
	unlockedAt   map[string]time.Time
	category     int // index into rewards.AllCategories
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a new BadgesScreen.
func New(env screen.Env) *BadgesScreen {
	return &BadgesScreen{env: env}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		prof, err := s.env.Practice.Profile(context.Background(), s.env.UserID)
		if err != nil {
			return badgesLoadedMsg{Err: err}
		}
		at := make(map[string]time.Time, len(prof.Badges))
		for _, u := range prof.Badges {
			at[u.BadgeID] = u.UnlockedAt
		}
		return badgesLoadedMsg{Owned: prof.Player.Badges, Unlocked: at}
	}
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Category"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.owned, s.unlockedAt = msg.Owned, msg.Unlocked
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		cats := rewards.AllCategories()
		switch msg.String() {
		case "tab":
			s.category = (s.category + 1) % len(cats)
			s.scrollOffset = 0
		case "shift+tab":
			s.category = (s.category - 1 + len(cats)) % len(cats)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.inCategory())-1 {
				s.scrollOffset++
			}
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// inCategory returns the selected category's badges, unlocked first.
func (s *BadgesScreen) inCategory() []rewards.Badge {
	cat := rewards.AllCategories()[s.category]
	var out []rewards.Badge
	for _, b := range rewards.Unlocked(s.owned) {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	for _, b := range rewards.Locked(s.owned) {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

func (s *BadgesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading badges...")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n🏅 %d of %d badges unlocked\n", len(rewards.Unlocked(s.owned)), len(rewards.Badges))))
	b.WriteString("\n")

	var tabs []string
	for i, c := range rewards.AllCategories() {
		label := c.DisplayName()
		if i == s.category {
			tabs = append(tabs, theme.Title.Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.inCategory()
	maxVisible := max((height-10)/2, 2)
	end := min(s.scrollOffset+maxVisible, len(list))

	for _, badge := range list[s.scrollOffset:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderBadge(badge, min(width-8, 60))))
		b.WriteString("\n")
	}
	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(list)-end)))
	}
	return b.String()
}

func (s *BadgesScreen) renderBadge(badge rewards.Badge, w int) string {
	at, ok := s.unlockedAt[badge.ID]
	owned := ok || slices.Contains(s.owned, badge.ID)

	icon := badge.Icon
	nameStyle := theme.Title
	descStyle := lipgloss.NewStyle().Foreground(theme.Text)
	status := theme.Correct.Render("unlocked")
	if ok {
		status = theme.Correct.Render(at.Format("Jan 02, 2006"))
	}
	if !owned {
		icon = "🔒"
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		descStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		status = theme.Hint.Render(fmt.Sprintf("+%d XP", badge.XPReward))
	}

	name := fmt.Sprintf("%s %s", icon, badge.Name)
	gap := max(w-lipgloss.Width(name)-lipgloss.Width(status), 1)
	return nameStyle.Render(name) + strings.Repeat(" ", gap) + status + "\n" +
		descStyle.Width(w).Render("   "+badge.Description)
}
