package catalog

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/router"
	"github.com/pawsitive/mathcat/internal/screen"
	practicescreen "github.com/pawsitive/mathcat/internal/screens/practice"
	"github.com/pawsitive/mathcat/internal/standards"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/layout"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

type rowKind int

const (
	rowDomainHeader rowKind = iota
	rowStandard
)

type row struct {
	kind     rowKind
	domain   standards.Domain
	standard *standards.Standard
}

type masteryLoadedMsg struct {
	mastery map[string]int
}

// CatalogScreen lists the standards by domain with the player's mastery
// and starts focused practice on the selected one.
type CatalogScreen struct {
	env          screen.Env
	rows         []row
	cursor       int
	scrollOffset int
	mastery      map[string]int
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)
var _ screen.Resumer = (*CatalogScreen)(nil)

// New creates a new CatalogScreen.
func New(env screen.Env) *CatalogScreen {
	var rows []row
	for _, d := range standards.Domains() {
		rows = append(rows, row{kind: rowDomainHeader, domain: d})
		stds := standards.ByDomain(d.Code)
		for i := range stds {
			rows = append(rows, row{kind: rowStandard, domain: d, standard: &stds[i]})
		}
	}

	s := &CatalogScreen{env: env, rows: rows, mastery: map[string]int{}}
	for i, r := range s.rows {
		if r.kind == rowStandard {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *CatalogScreen) Init() tea.Cmd {
	return s.load()
}

// Resume refreshes mastery after a practice run.
func (s *CatalogScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *CatalogScreen) load() tea.Cmd {
	return func() tea.Msg {
		prof, err := s.env.Practice.Profile(context.Background(), s.env.UserID)
		if err != nil {
			return nil
		}
		m := make(map[string]int, len(prof.Standards))
		for _, p := range prof.Standards {
			m[p.StandardID] = p.Mastery
		}
		return masteryLoadedMsg{mastery: m}
	}
}

func (s *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case masteryLoadedMsg:
		s.mastery = msg.mastery
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextDomain()
		case "enter":
			return s, s.selectStandard()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *CatalogScreen) Title() string {
	return "Standards"
}

func (s *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Domain"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the standard under the cursor.
func (s *CatalogScreen) Selected() *standards.Standard {
	return s.rows[s.cursor].standard
}

func (s *CatalogScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowStandard {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextDomain jumps to the first standard of the next domain, wrapping
// around at the end.
func (s *CatalogScreen) nextDomain() {
	current := s.rows[s.cursor].domain.Code
	for i := 1; i < len(s.rows); i++ {
		j := (s.cursor + i) % len(s.rows)
		if s.rows[j].kind == rowStandard && s.rows[j].domain.Code != current {
			s.cursor = j
			return
		}
	}
}

func (s *CatalogScreen) selectStandard() tea.Cmd {
	std := s.Selected()
	if std == nil {
		return nil
	}
	next := practicescreen.New(s.env, practicescreen.Options{StandardID: std.ID})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *CatalogScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tip := s.renderTip(cw)
	listHeight := max(height-lipgloss.Height(tip)-1, 3)
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		if r.kind == rowDomainHeader {
			lines = append(lines, s.renderDomainHeader(r.domain))
			continue
		}
		lines = append(lines, s.renderStandardRow(r, i == s.cursor, cw))
	}

	body := strings.Join(lines, "\n") + "\n\n" + tip
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}

func (s *CatalogScreen) adjustScroll(height int) {
	header := s.cursor
	for header > 0 && s.rows[header-1].kind == rowDomainHeader {
		header--
	}
	if header < s.scrollOffset {
		s.scrollOffset = header
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *CatalogScreen) renderDomainHeader(d standards.Domain) string {
	return lipgloss.NewStyle().
		Foreground(theme.DomainColor(d.Code)).
		Bold(true).
		Render(strings.ToUpper(d.Name))
}

func (s *CatalogScreen) renderStandardRow(r row, selected bool, cw int) string {
	std := r.standard
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "▸ "
		nameStyle = theme.Title
	}

	// Standards without a built-in drill are marked; they are served by
	// the LLM generator or fall back to a random drill.
	mark := " "
	if gen := s.env.Practice.Generator(); gen != nil && !gen.Has(std.ID) {
		mark = theme.Hint.Render("✦")
	}

	barWidth := 18
	nameWidth := max(cw-lipgloss.Width(cursor)-barWidth-12, 10)
	name := std.Code + " " + std.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	bar := components.MasteryBar("", s.mastery[std.ID], barWidth)
	return fmt.Sprintf("%s%s %s %s", cursor, mark, nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)), bar.View())
}

func (s *CatalogScreen) renderTip(cw int) string {
	std := s.Selected()
	if std == nil {
		return ""
	}
	title := lipgloss.NewStyle().Foreground(theme.DomainColor(std.DomainCode)).Bold(true).
		Render(std.Code + " · " + std.Title)
	lines := []string{
		title,
		theme.Body.Render(std.Description),
		theme.Hint.Render("💡 " + standards.ConceptTip(std.ID)),
	}
	return components.BorderedCard(strings.Join(lines, "\n"), cw, theme.DomainColor(std.DomainCode))
}
