// Package placeholder fills in for AI screens when no provider is
// configured.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// SetupHint lists the environment variables that enable AI features.
const SetupHint = "This feature needs an AI provider.\n\n" +
	"Set one of GEMINI_API_KEY, OPENAI_API_KEY,\n" +
	"ANTHROPIC_API_KEY or OPENROUTER_API_KEY and restart.\n" +
	"See eliteprep --help for the config file."

type PlaceholderScreen struct {
	title string
}

var (
	_ screen.Screen          = (*PlaceholderScreen)(nil)
	_ screen.KeyHintProvider = (*PlaceholderScreen)(nil)
)

func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

// Update goes back on Enter. Esc is handled by the app.
func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	title := theme.Heading.Render(p.title)
	body := lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(SetupHint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body))
}

func (p *PlaceholderScreen) Title() string { return p.title }

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
}
