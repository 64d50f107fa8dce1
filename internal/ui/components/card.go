package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// that every box on a screen lines up.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a double-border frame centered within the given
// dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border box at the given content width.
func Card(content string, cw int) string {
	return BorderedCard(content, cw, theme.Border)
}

// BorderedCard is Card with a custom border color.
func BorderedCard(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Centered renders s centered in a line of width w.
func Centered(s string, w int) string {
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(s)
}
