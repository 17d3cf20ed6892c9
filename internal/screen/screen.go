// Package screen defines what the router needs from a screen, plus the
// optional hooks a screen can implement to take part in navigation.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eliteprep/internal/ui/layout"
)

// Screen is one full-page view between the header and footer bars.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body only. width and height are what is left after
	// the app chrome.
	View(width, height int) string

	// Title is shown centred in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is called when the screen leaves the stack, whether popped or
// replaced.
type Closer interface {
	Close()
}

// Focuser is called when the screen is on top again after the screens
// above it were popped.
type Focuser interface {
	Focus() tea.Cmd
}

// EscapeHandler screens get Esc themselves while HandlesEscape is true,
// e.g. to leave an input field, instead of being popped.
type EscapeHandler interface {
	HandlesEscape() bool
}
