package arena

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// lowClock is when the exam clock turns red.
const lowClock = 60

func (a *ArenaScreen) View(width, height int) string {
	if !a.opened {
		return renderLoading(width, a.spinner.View()+" Opening your session...")
	}
	if a.view.ResumePending {
		return renderResumePrompt(width)
	}

	var body string
	switch a.view.Mode() {
	case session.ModeExam:
		body = a.renderExam(width)
	case session.ModePaper:
		body = a.renderPapers(width, height)
	default:
		body = a.renderPractice(width)
	}

	if a.editTopic {
		body += "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, a.topicInput.View())
	}
	if a.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: "+a.errMsg)
	}
	return body
}

// renderInfoLine renders the bar above the question: topic on the left,
// status on the right.
func renderInfoLine(width int, left, right string) string {
	l := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + left)
	r := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	line := l
	if pad := width - lipgloss.Width(l) - lipgloss.Width(r) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + r
	}
	return line + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))) +
		"\n\n"
}

func renderQuestion(width int, q *problemgen.Question) string {
	return lipgloss.NewStyle().
		Width(min(width-8, 90)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
}

func (a *ArenaScreen) renderPractice(width int) string {
	pf := a.view.Practice()

	var b strings.Builder
	b.WriteString(renderInfoLine(width, a.view.Topic, "Difficulty: "+string(a.view.Difficulty)))

	if a.view.Loading.Question {
		b.WriteString(renderLoading(width, a.spinner.View()+" Generating question..."))
		return b.String()
	}
	if pf.Question == nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No question loaded. Press N to fetch one."))
		return b.String()
	}

	var block strings.Builder
	block.WriteString(renderQuestion(width, pf.Question))
	block.WriteString("\n\n")
	block.WriteString(a.choice.View())

	if pf.Graded() {
		block.WriteString("\n")
		block.WriteString(renderFeedback(width, pf))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block.String()))
	return b.String()
}

func renderFeedback(width int, pf *session.PracticeFlow) string {
	q := pf.Question
	var b strings.Builder

	if pf.Feedback == session.FeedbackCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Correct answer: " + q.Answer))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-8, 80)).
			Foreground(theme.Text).
			Render(q.Explanation))
		b.WriteString("\n")
	}
	if pf.Elaboration != "" {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Step by step"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-8, 80)).
			Foreground(theme.Text).
			Render(pf.Elaboration))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *ArenaScreen) renderExam(width int) string {
	ex := a.view.Exam()

	var b strings.Builder
	if a.view.Loading.Exam {
		b.WriteString(renderInfoLine(width, ex.Topic, "Mock exam"))
		b.WriteString(renderLoading(width, a.spinner.View()+" Setting your exam paper..."))
		return b.String()
	}
	if !ex.Loaded() {
		b.WriteString(renderInfoLine(width, ex.Topic, "Mock exam"))
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("The exam could not be prepared. Press X to try again or B for practice."))
		return b.String()
	}

	clock := theme.Clock
	if ex.Remaining <= lowClock && !ex.Submitted {
		clock = theme.ClockLow
	}
	status := fmt.Sprintf("Q %d/%d   answered %d   %s",
		ex.Index+1, len(ex.Questions), ex.Answered(), clock.Render(layout.FormatClock(ex.Remaining)))
	if ex.Submitted {
		status = fmt.Sprintf("Submitted   score %d/%d", ex.Score(), len(ex.Questions))
	}
	b.WriteString(renderInfoLine(width, ex.Topic, status))

	var block strings.Builder
	block.WriteString(renderQuestion(width, ex.Current()))
	block.WriteString("\n\n")
	block.WriteString(a.choice.View())
	block.WriteString("\n")
	block.WriteString(renderDots(ex))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block.String()))

	if ex.Submitted {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Final score: %d / %d", ex.Score(), len(ex.Questions))))
	}
	return b.String()
}

// renderDots shows one marker per question: filled when answered, boxed
// for the one on display.
func renderDots(ex *session.ExamFlow) string {
	parts := make([]string, len(ex.Questions))
	for i := range ex.Questions {
		mark := "○"
		if ex.Answers[i] != nil {
			mark = "●"
		}
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == ex.Index {
			mark = "[" + mark + "]"
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		parts[i] = style.Render(mark)
	}
	return strings.Join(parts, " ")
}

func (a *ArenaScreen) renderPapers(width, height int) string {
	pf := a.view.Paper()
	if pf.Selected != nil {
		return a.renderPaper(width, height, pf)
	}

	var b strings.Builder
	b.WriteString(renderInfoLine(width, "Past paper catalog", "mock papers are not graded"))
	b.WriteString("  " + a.search.View())
	b.WriteString("\n\n")

	matches := curriculum.FilterPapers(a.search.Value())
	if len(matches) == 0 {
		b.WriteString(theme.Hint.Render("  No papers match."))
		return b.String()
	}
	for i, p := range matches {
		prefix := "    "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == a.paperIdx {
			prefix = "  ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%-28s %s", prefix, p.Title, p.Difficulty)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *ArenaScreen) renderPaper(width, height int, pf *session.PaperFlow) string {
	var b strings.Builder
	status := pf.Selected.Difficulty
	if len(pf.Content) > 0 {
		status = fmt.Sprintf("%d marks", problemgen.TotalMarks(pf.Content))
	}
	b.WriteString(renderInfoLine(width, pf.Selected.Title, status))

	if a.view.Loading.Paper {
		b.WriteString(renderLoading(width, a.spinner.View()+" Drafting your mock paper..."))
		return b.String()
	}
	if len(pf.Content) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No paper generated. Press R to try again."))
		return b.String()
	}

	lines := strings.Split(renderPaperBody(width, pf.Content), "\n")
	if a.scroll > len(lines)-1 {
		a.scroll = max(len(lines)-1, 0)
	}
	visible := lines[a.scroll:]
	if room := height - 4; room > 0 && len(visible) > room {
		visible = visible[:room]
	}
	b.WriteString(strings.Join(visible, "\n"))
	return b.String()
}

func renderPaperBody(width int, paper []problemgen.PaperQuestion) string {
	w := min(width-8, 90)
	text := lipgloss.NewStyle().Width(w).PaddingLeft(4).Foreground(theme.Text)
	marks := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for _, q := range paper {
		b.WriteString(theme.Heading.Render(fmt.Sprintf("  %d.", q.Number)))
		b.WriteString(marks.Render(fmt.Sprintf("  (%d marks)", q.Marks)))
		b.WriteString("\n")
		b.WriteString(text.Render(q.Text))
		b.WriteString("\n")
		for _, p := range q.Parts {
			b.WriteString(text.Render(fmt.Sprintf("%s %s", p.Label, p.Text)) + marks.Render(fmt.Sprintf(" (%d)", p.Marks)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderResumePrompt(width int) string {
	center := func(st lipgloss.Style, s string) string {
		return st.Width(width).Align(lipgloss.Center).Render(s)
	}
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "You have a session in progress."))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Pick up where you left off, or discard it."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[R] Resume"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[F] Start fresh"))
	return b.String()
}

func renderLoading(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + msg)
}
