package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // topics done, nothing to review
	MascotAlert                     // mistakes piling up
)

// AlertMistakes is the ledger size at which the mascot starts nagging.
const AlertMistakes = 5

const mascotIdle = `  ▄▄▄▄▄▄▄
 ▀▀▀█▀▀▀▀
  ( o o )
   \ ∫ /`

const mascotCelebrating = `  ▄▄▄▄▄▄▄
 ▀▀▀█▀▀▀▀
  ( ^ ^ )  ✓
   \ ∑ /`

const mascotAlert = `  ▄▄▄▄▄▄▄
 ▀▀▀█▀▀▀▀
  ( o o )  !
   \ ✗ /`

// pickMascot chooses a variant from the learner's counts.
func pickMascot(mistakes, completed int) MascotVariant {
	switch {
	case mistakes >= AlertMistakes:
		return MascotAlert
	case completed > 0 && mistakes == 0:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Success
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
