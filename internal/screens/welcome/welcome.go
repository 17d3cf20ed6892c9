// Package welcome is the opening splash. It hands over to the hub on the
// first key press or after a few seconds.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

const frame = 100 * time.Millisecond

// The splash reveals itself in stages measured from the first frame.
const (
	showSymbols = 500 * time.Millisecond
	showBanner  = 1500 * time.Millisecond
	autoAdvance = 4 * time.Second
)

const mortarboard = `        ▄▄▄▄▄▄▄
   ▄▄▀▀▀       ▀▀▀▄▄
 ▀▀▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▀▀  ╷
      █  ∫ Σ √ π  █     │
      ▀▄▄▄▄▄▄▄▄▄▄▄▀     ●`

// Cycled beside the cap band once symbols are shown.
var drift = []string{"∂", "∞", "θ", "λ", "Δ"}

type frameMsg time.Time

type WelcomeScreen struct {
	newHub func() screen.Screen
	shown  time.Duration
	frames int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with newHub().
func New(newHub func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{newHub: newHub}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frames++
		w.shown += frame
		if w.shown >= autoAdvance {
			return w, w.leave()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave builds the hub exactly once.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	hub := w.newHub()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: hub} }
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(mortarboard)
	if w.shown >= showSymbols {
		lines := strings.Split(art, "\n")
		sym := lipgloss.NewStyle().Foreground(theme.Accent).Render(drift[w.frames%len(drift)])
		lines[3] = sym + "  " + lines[3]
		art = strings.Join(lines, "\n")
	}

	parts := []string{art}
	if w.shown >= showBanner {
		parts = append(parts,
			"", Banner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("A-Level mathematics, exam ready."),
			"", theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}
