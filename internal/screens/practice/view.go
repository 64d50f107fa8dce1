package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/standards"
	"github.com/pawsitive/mathcat/internal/ui/components"
	"github.com/pawsitive/mathcat/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.attempt == nil {
		body := s.spin.View() + " Finding a problem..."
		if s.phase == phaseFailed {
			body = theme.Incorrect.Render(s.errMsg) + "\n\n" + theme.Hint.Render("Press Enter to try again.")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	p := s.attempt.Problem()
	sections := []string{
		s.renderInfoLine(p, cw),
		components.BorderedCard(theme.Body.Bold(true).Render(p.Question), cw, theme.DomainColor(standards.DomainOf(p.StandardID))),
	}

	switch s.phase {
	case phaseLoading:
		sections = append(sections, s.spin.View()+" Finding the next problem...")
	case phaseRevealed:
		sections = append(sections, "Answer: "+s.input.View(), s.renderReveal(cw))
	default:
		line := "Answer: " + s.input.View()
		if s.phase == phaseChecking {
			line += " " + s.spin.View()
		}
		sections = append(sections, line)
		if s.feedback.Retry {
			sections = append(sections, theme.Incorrect.Render(
				fmt.Sprintf("🐾 %q isn't quite right. One more try!", s.lastAnswer)))
		}
		if s.showHint && p.Hint != "" {
			sections = append(sections, theme.Hint.Render("💡 Hint: "+p.Hint))
		}
	}

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n")))
}

func (s *PracticeScreen) renderInfoLine(p *problemgen.Problem, cw int) string {
	left := p.StandardID
	if std, err := standards.Get(p.StandardID); err == nil {
		left = std.Code + " · " + std.Title
	}
	left = lipgloss.NewStyle().
		Foreground(theme.DomainColor(standards.DomainOf(p.StandardID))).
		Bold(true).
		Render(left)

	right := theme.Hint.Render(fmt.Sprintf("%s · ✓ %d/%d", p.Difficulty, s.correct, s.solved))

	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderReveal shows the result of a finished problem: the cat message,
// XP earned with new badges, level changes and the explanation.
func (s *PracticeScreen) renderReveal(cw int) string {
	fb := s.feedback
	p := s.attempt.Problem()

	var lines []string
	if fb.Correct {
		lines = append(lines, theme.Correct.Render("✓ Correct!"))
	} else {
		lines = append(lines, theme.Incorrect.Render("✗ The answer was "+p.CorrectAnswer))
	}

	if out := fb.Outcome; out != nil {
		if out.Message != "" {
			lines = append(lines, theme.Body.Render(out.Message))
		}
		res := out.Result
		if res.XPEarned > 0 {
			lines = append(lines, theme.Title.
				Render(fmt.Sprintf("+%d XP", res.XPEarned)))
			// The breakdown already names any badges unlocked.
			for _, item := range res.XPBreakdown {
				lines = append(lines, theme.Hint.Render("  "+item))
			}
		}
		if res.NewLevel {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("🎉 Level up! You're now a %s %s", res.LevelInfo.Title, res.LevelInfo.Icon)))
		}
	}

	if p.Explanation != "" {
		lines = append(lines, "", theme.Hint.Render(p.Explanation))
	}

	return components.Card(strings.Join(lines, "\n"), cw)
}
