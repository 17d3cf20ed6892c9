// Package plan asks for mock grades and shows an AI-written revision plan.
package plan

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

type planMsg struct {
	Text string
	Err  error
}

// PlanScreen implements screen.Screen.
type PlanScreen struct {
	tutor   *tutor.Tutor
	input   components.TextInput
	plan    string
	loading bool
	errMsg  string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

func New(tu *tutor.Tutor) *PlanScreen {
	return &PlanScreen{
		tutor: tu,
		input: components.NewTextInput("Mock grades:", "P1: B, P2: C, S1: A", 80),
	}
}

func (p *PlanScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PlanScreen) Title() string {
	return "Study Plan"
}

func (p *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planMsg:
		p.loading = false
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		p.plan = msg.Text
		return p, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			grades := p.input.Text()
			if grades == "" || p.loading {
				return p, nil
			}
			p.loading, p.errMsg = true, ""
			tu := p.tutor
			return p, func() tea.Msg {
				text, err := tu.StudyPlan(context.Background(), grades)
				return planMsg{Text: text, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PlanScreen) View(width, height int) string {
	cw := max(min(width-8, 90), 20)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("Enter your latest mock grades per unit and get a focused revision schedule."))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	switch {
	case p.loading:
		b.WriteString(theme.Hint.Render("Building your plan..."))
	case p.plan != "":
		b.WriteString(theme.Card.Width(cw).Render(theme.Heading.Render("Your plan") + "\n\n" + p.plan))
	}
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + p.errMsg))
	}
	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String())
}
