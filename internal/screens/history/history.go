// Package history is the mistake review screen: the ledger newest first,
// with deletion, topic retry and an AI diagnostic report.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

type deletedMsg struct {
	ID  string
	Err error
}

type reportMsg struct {
	Text string
	Err  error
}

// PracticeFunc opens a practice session on topic.
type PracticeFunc func(topic string) screen.Screen

// HistoryScreen lists recorded mistakes.
type HistoryScreen struct {
	ledger   *mistakes.Ledger
	tutor    *tutor.Tutor
	practice PracticeFunc

	list      []mistakes.Mistake
	selected  int
	expanded  map[string]bool
	confirmID string

	report        string
	reportLoading bool
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Focuser = (*HistoryScreen)(nil)
var _ screen.EscapeHandler = (*HistoryScreen)(nil)

// New creates a HistoryScreen. tu and practice may be nil, which disables
// the diagnostic report and topic retry.
func New(ledger *mistakes.Ledger, tu *tutor.Tutor, practice PracticeFunc) *HistoryScreen {
	s := &HistoryScreen{
		ledger:   ledger,
		tutor:    tu,
		practice: practice,
		expanded: make(map[string]bool),
	}
	s.reload()
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

// Focus reloads the ledger; a practice round may have added records.
func (s *HistoryScreen) Focus() tea.Cmd {
	s.reload()
	return nil
}

func (s *HistoryScreen) reload() {
	s.list = s.ledger.List()
	if s.selected >= len(s.list) {
		s.selected = max(len(s.list)-1, 0)
	}
}

func (s *HistoryScreen) Title() string {
	return "Mistakes"
}

func (s *HistoryScreen) HandlesEscape() bool {
	return s.confirmID != "" || s.report != ""
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmID != "" {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "d", Description: "Delete"},
	}
	if s.practice != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry topic"})
	}
	if s.tutor != nil {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "Analyse"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		delete(s.expanded, msg.ID)
		s.reload()
		return s, nil

	case reportMsg:
		s.reportLoading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Text
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	s.errMsg = ""

	if s.confirmID != "" {
		id := s.confirmID
		switch key {
		case "y":
			s.confirmID = ""
			ledger := s.ledger
			return func() tea.Msg {
				return deletedMsg{ID: id, Err: ledger.Delete(context.Background(), id)}
			}
		case "n", "esc":
			s.confirmID = ""
		}
		return nil
	}

	if s.report != "" && key == "esc" {
		s.report = ""
		return nil
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.list)-1 {
			s.selected++
		}
	case "enter":
		if m, ok := s.current(); ok {
			s.expanded[m.ID] = !s.expanded[m.ID]
		}
	case "d":
		if m, ok := s.current(); ok {
			s.confirmID = m.ID
		}
	case "r":
		if m, ok := s.current(); ok && s.practice != nil {
			next := s.practice(m.Topic)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "a":
		if s.tutor == nil || len(s.list) == 0 || s.reportLoading {
			return nil
		}
		s.reportLoading = true
		tu, recent := s.tutor, s.ledger.Recent(tutor.DiagnosticWindow)
		return func() tea.Msg {
			text, err := tu.DiagnosticReport(context.Background(), recent)
			return reportMsg{Text: text, Err: err}
		}
	}
	return nil
}

func (s *HistoryScreen) current() (mistakes.Mistake, bool) {
	if s.selected < 0 || s.selected >= len(s.list) {
		return mistakes.Mistake{}, false
	}
	return s.list[s.selected], true
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.list) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No mistakes recorded. Keep practising!")
	}

	cw := min(width-4, 90)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(fmt.Sprintf("%d mistakes to learn from", len(s.list)))))
	b.WriteString("\n\n")

	var rows []string
	for i, m := range s.list {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-11s %-26s %s", prefix, m.Date, truncate(m.Topic, 26), truncate(m.Question, max(cw-44, 10)))
		rows = append(rows, style.Render(line))

		if s.expanded[m.ID] {
			rows = append(rows, renderDetail(m, cw))
		}
		if s.confirmID == m.ID {
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("    Delete this mistake? [y/n]"))
		}
	}
	block := lipgloss.NewStyle().Width(cw).Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	switch {
	case s.reportLoading:
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Analysing your recent mistakes...")))
	case s.report != "":
		b.WriteString("\n")
		card := theme.Card.Width(cw).Render(
			theme.Heading.Render("Diagnostic report") + "\n\n" + s.report)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg)))
	}
	return b.String()
}

func renderDetail(m mistakes.Mistake, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	your := theme.Incorrect.Render(m.YourAnswer)
	if m.Unanswered() {
		your = dim.Italic(true).Render(m.YourAnswer)
	}
	body := strings.Join([]string{
		m.Question,
		"",
		dim.Render("Your answer:    ") + your,
		dim.Render("Correct answer: ") + theme.Correct.Render(m.CorrectAnswer),
		"",
		m.Explanation,
	}, "\n")
	return lipgloss.NewStyle().
		Width(width-4).
		MarginLeft(4).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Border).
		PaddingLeft(1).
		Render(body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
