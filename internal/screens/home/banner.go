package home

import "github.com/pawsitive/mathcat/internal/ui/theme"

const bannerFull = `█▀▄▀█ ▄▀█ ▀█▀ █ █ █▀▀ ▄▀█ ▀█▀
█ ▀ █ █▀█  █  █▀█ █▄▄ █▀█  █ `

const bannerCompact = "M · A · T · H · C · A · T"

// renderBanner returns the title block, or a one-line version in compact
// mode.
func renderBanner(compact bool) string {
	if compact {
		return theme.Title.Render(bannerCompact)
	}
	return theme.Title.Render(bannerFull) + "\n" +
		theme.Hint.Render("7th grade math practice")
}
