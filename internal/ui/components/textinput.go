package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// TextInput is a focused single-line field with a dim label in front.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput returns a focused input. limit caps the number of
// characters; zero means no cap.
func NewTextInput(label, placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	m.Focus()
	return TextInput{Model: m, Label: label}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.Label == "" {
		return t.Model.View()
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label) + " " + t.Model.View()
}

// Value is the raw contents.
func (t TextInput) Value() string { return t.Model.Value() }

// Text is the contents with surrounding whitespace removed.
func (t TextInput) Text() string { return strings.TrimSpace(t.Model.Value()) }

func (t *TextInput) Reset() { t.Model.SetValue("") }

// Take returns Text and clears the field.
func (t *TextInput) Take() string {
	s := t.Text()
	t.Reset()
	return s
}
