// Package summary renders the report for a submitted timed exam.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// SummaryScreen displays an exam's score and a per-question review.
type SummaryScreen struct {
	exam   *session.ExamFlow
	cursor int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen for a submitted exam.
func New(exam *session.ExamFlow) *SummaryScreen {
	return &SummaryScreen{exam: exam}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Exam Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.exam == nil {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.exam.Questions)-1 {
			s.cursor++
		}
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	ex := s.exam
	if ex == nil || len(ex.Questions) == 0 {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	score, total := ex.Score(), len(ex.Questions)

	headline := "Exam submitted"
	if ex.Remaining == 0 {
		headline = "Time's up! Exam submitted"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), ex.Topic))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Score: %d / %d        Answered: %d        Time left: %s",
			score, total, ex.Answered(), layout.FormatClock(ex.Remaining))))
	b.WriteString("\n\n")

	bar := components.Tally{Done: score, Total: total, Width: min(width-8, 60), Caption: components.CaptionPercent}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	for i := range ex.Questions {
		b.WriteString(s.renderRow(i, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderDetail(width))

	return b.String()
}

func (s *SummaryScreen) answerAt(i int) string {
	if a := s.exam.Answers[i]; a != nil {
		return *a
	}
	return mistakes.Unanswered
}

func (s *SummaryScreen) renderRow(i, width int) string {
	q := s.exam.Questions[i]
	ans := s.exam.Answers[i]
	correct := ans != nil && *ans == q.Answer

	icon, style := "✗", theme.Incorrect
	if correct {
		icon, style = "✓", theme.Correct
	}
	prefix := "  "
	if i == s.cursor {
		prefix = "▸ "
	}
	text := truncate(q.Text, width-16)
	return "  " + prefix + style.Render(icon) + fmt.Sprintf(" Q%d  ", i+1) + lipgloss.NewStyle().Foreground(theme.Text).Render(text)
}

func (s *SummaryScreen) renderDetail(width int) string {
	q := s.exam.Questions[s.cursor]
	w := min(width-6, 90)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("  Question %d", s.cursor+1)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(w).PaddingLeft(2).Foreground(theme.Text).Render(q.Text))
	b.WriteString("\n")
	b.WriteString(dim.Render("  Your answer:    ") + lipgloss.NewStyle().Foreground(theme.Text).Render(s.answerAt(s.cursor)))
	b.WriteString("\n")
	b.WriteString(dim.Render("  Correct answer: ") + theme.Correct.Render(q.Answer))
	b.WriteString("\n")
	if q.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Width(w).PaddingLeft(2).Foreground(theme.TextDim).Italic(true).Render(q.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
