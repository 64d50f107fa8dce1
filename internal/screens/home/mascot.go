package home

import (
	"charm.land/lipgloss/v2"

	"github.com/pawsitive/mathcat/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default amber
	MascotCelebrating                      // Green, happy eyes: hot streak or goals done
	MascotSleepy                           // Dim, eyes closed: no practice yet today
)

const mascotIdle = ` /\_/\
( o.o )
 > ^ <`

const mascotCelebrating = ` /\_/\   ★
( ^.^ )
 > ^ <  ★`

const mascotSleepy = ` /\_/\
( -.- ) zZ
 > ^ <`

// RenderMascot returns the cat art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Success
	case MascotSleepy:
		art, fg = mascotSleepy, theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// greeting is the line the mascot says for each variant.
func greeting(v MascotVariant) string {
	switch v {
	case MascotCelebrating:
		return "Purr-fect work! Keep that streak going!"
	case MascotSleepy:
		return "Yawn... ready to wake up your brain?"
	default:
		return "Meow! Let's do some math!"
	}
}
