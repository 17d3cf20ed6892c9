// Package app is the composition root: it builds the shared services and
// runs the terminal UI over them.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/screens/arena"
	"github.com/abhisek/eliteprep/internal/screens/home"
	"github.com/abhisek/eliteprep/internal/screens/welcome"
	"github.com/abhisek/eliteprep/internal/ui/layout"
)

// Counter is satisfied by the mistake ledger and the topic tracker.
type Counter interface {
	Len() int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	mistakes  Counter
	completed Counter
	width     int
	height    int
}

// newAppModel starts on the welcome screen, which hands over to the hub.
func newAppModel(deps home.Deps) AppModel {
	hub := func() screen.Screen { return home.New(deps) }
	return AppModel{
		router:    router.New(welcome.New(hub)),
		mistakes:  deps.Mistakes,
		completed: deps.Topics,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.MinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.render())
	return v
}

// render lays out header, active screen and footer for the current size.
func (m AppModel) render() string {
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.Header(layout.Status{
		Title:     title,
		Mistakes:  count(m.mistakes),
		Completed: count(m.completed),
	}, m.width)
	footer := layout.Footer(m.footerHints(active), m.width)

	body := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	return layout.Frame(header, body, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func count(c Counter) int {
	if c == nil {
		return 0
	}
	return c.Len()
}

// Run starts the terminal UI and blocks until it exits. When
// metricsAddr is set the Prometheus endpoint is served alongside.
func Run(ctx context.Context, svc *Services, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if metricsAddr != "" {
		go func() {
			if err := svc.Metrics.Serve(ctx, metricsAddr); err != nil {
				svc.Log.Error("metrics endpoint failed", "addr", metricsAddr, "error", err)
			}
		}()
	}

	p := tea.NewProgram(newAppModel(svc.HomeDeps()), tea.WithContext(ctx))

	// Ticks and late generation results arrive outside the update loop.
	if svc.Machine != nil {
		svc.Machine.OnChange(func() { p.Send(arena.ChangedMsg{}) })
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
