// Package tutorchat is a free-form conversation with the AI tutor about
// one topic.
package tutorchat

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

// GeneralTopic is used when the chat is not about a specific topic.
const GeneralTopic = "A-Level Mathematics"

type replyMsg struct {
	Text string
	Err  error
}

// ChatScreen holds one conversation. History is lost when it closes.
type ChatScreen struct {
	tutor   *tutor.Tutor
	topic   string
	turns   []tutor.Turn
	input   components.TextInput
	waiting bool
	errMsg  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a chat about topic, or about the course in general when topic
// is empty.
func New(tu *tutor.Tutor, topic string) *ChatScreen {
	if strings.TrimSpace(topic) == "" {
		topic = GeneralTopic
	}
	return &ChatScreen{
		tutor: tu,
		topic: topic,
		input: components.NewTextInput("You:", "Ask anything, e.g. why does completing the square work?", 200),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "Tutor"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// Turns returns the conversation so far.
func (c *ChatScreen) Turns() []tutor.Turn {
	return append([]tutor.Turn(nil), c.turns...)
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.turns = append(c.turns, tutor.Turn{Role: tutor.RoleTutor, Text: msg.Text})
		return c, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() tea.Cmd {
	text := c.input.Text()
	if text == "" || c.waiting {
		return nil
	}
	history := c.Turns()
	c.turns = append(c.turns, tutor.Turn{Role: tutor.RoleLearner, Text: text})
	c.input.Reset()
	c.waiting, c.errMsg = true, ""

	tu, topic := c.tutor, c.topic
	return func() tea.Msg {
		reply, err := tu.Reply(context.Background(), topic, history, text)
		return replyMsg{Text: reply, Err: err}
	}
}

func (c *ChatScreen) View(width, height int) string {
	cw := max(min(width-8, 90), 20)
	learner := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw).PaddingLeft(2)

	var parts []string
	parts = append(parts, theme.Subtitle.Render("Topic: "+c.topic), "")
	if len(c.turns) == 0 {
		parts = append(parts, theme.Hint.Render("Ask the tutor a question to get started."))
	}
	for _, t := range c.turns {
		if t.Role == tutor.RoleLearner {
			parts = append(parts, learner.Render("You"))
		} else {
			parts = append(parts, tutorStyle.Render("Tutor"))
		}
		parts = append(parts, body.Render(t.Text), "")
	}
	if c.waiting {
		parts = append(parts, theme.Hint.Render("Tutor is thinking..."))
	}
	if c.errMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+c.errMsg))
	}

	footer := "\n" + c.input.View()
	avail := max(height-lipgloss.Height(footer), 1)

	// Keep the newest lines in view.
	lines := strings.Split(strings.Join(parts, "\n"), "\n")
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	transcript := lipgloss.NewStyle().Height(avail).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().PaddingLeft(4).Render(transcript + footer)
}
