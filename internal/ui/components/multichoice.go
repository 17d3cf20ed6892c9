package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// ChoiceLabel returns the letter shown next to option i.
func ChoiceLabel(i int) string {
	if i >= 0 && i < len(choiceLabels) {
		return choiceLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// MultiChoice is a multiple-choice selector. Chosen marks a recorded
// answer and Correct is -1 until the answer is revealed.
type MultiChoice struct {
	Options []string
	Cursor  int
	Chosen  int
	Correct int
	Locked  bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Chosen:  -1,
		Correct: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. The returned index is the option picked by
// this key (enter, a letter or a digit), or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Locked || len(m.Options) == 0 {
		return m, -1
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, -1
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, -1
	case "enter":
		return m, m.Cursor
	}

	if len(key) == 1 {
		idx := -1
		switch c := key[0]; {
		case c >= '1' && c <= '9':
			idx = int(c - '1')
		case c >= 'a' && c <= 'f':
			idx = int(c - 'a')
		}
		if idx >= 0 && idx < len(m.Options) {
			m.Cursor = idx
			return m, idx
		}
	}
	return m, -1
}

// Reveal locks the component and colours the correct and chosen options.
func (m MultiChoice) Reveal(correct, chosen int) MultiChoice {
	m.Locked = true
	m.Correct = correct
	m.Chosen = chosen
	return m
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		marker := " "
		if i == m.Chosen {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, ChoiceLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Correct >= 0 && i == m.Correct:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Correct >= 0 && i == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.Correct >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor && !m.Locked:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
