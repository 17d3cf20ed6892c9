package syllabus

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

type briefMsg struct {
	Brief *tutor.ChapterBrief
	Err   error
}

// ChapterScreen shows the study notes for one chapter and, on request, an
// AI-written revision brief.
type ChapterScreen struct {
	chapter curriculum.Chapter
	tracker *progress.Tracker
	tutor   *tutor.Tutor

	brief        *tutor.ChapterBrief
	briefLoading bool
	errMsg       string
	scroll       int
}

var _ screen.Screen = (*ChapterScreen)(nil)
var _ screen.KeyHintProvider = (*ChapterScreen)(nil)

func newChapterScreen(ch curriculum.Chapter, tracker *progress.Tracker, tu *tutor.Tutor) *ChapterScreen {
	return &ChapterScreen{chapter: ch, tracker: tracker, tutor: tu}
}

func (d *ChapterScreen) Init() tea.Cmd { return nil }
func (d *ChapterScreen) Title() string { return d.chapter.Title }

func (d *ChapterScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if d.tutor != nil && d.brief == nil {
		hints = append(hints, layout.KeyHint{Key: "b", Description: "AI brief"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (d *ChapterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case briefMsg:
		d.briefLoading = false
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.brief = msg.Brief
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if d.scroll > 0 {
				d.scroll--
			}
		case "down", "j":
			d.scroll++
		case "b":
			if d.tutor == nil || d.brief != nil || d.briefLoading {
				return d, nil
			}
			d.briefLoading, d.errMsg = true, ""
			tu, ch := d.tutor, d.chapter
			return d, func() tea.Msg {
				brief, err := tu.ChapterBrief(context.Background(), ch)
				return briefMsg{Brief: brief, Err: err}
			}
		}
	}
	return d, nil
}

func (d *ChapterScreen) View(width, height int) string {
	ch := d.chapter
	cw := max(min(width-8, 80), 20)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)

	var b strings.Builder
	done, total := curriculum.ChapterProgress(ch, d.tracker.Has)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(ch.Title))
	b.WriteString("\n")
	b.WriteString(dim.Render(fmt.Sprintf("%d of %d topics completed", done, total)))
	b.WriteString("\n\n")

	section(&b, "Topics")
	for _, t := range ch.Topics {
		if d.tracker.Has(t) {
			b.WriteString(theme.Correct.Render("● " + t))
		} else {
			b.WriteString(dim.Render("○ " + t))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if g := ch.Guide; g != nil {
		section(&b, "Lesson guide")
		b.WriteString(body.Render(g.CoreContent))
		b.WriteString("\n")
		bullets(&b, "→ ", g.Structure, dim)
		bullets(&b, "★ ", g.Tips, lipgloss.NewStyle().Foreground(theme.Accent))
		b.WriteString("\n")
	}

	if det := ch.Details; det != nil {
		section(&b, "Key points")
		bullets(&b, "• ", det.KeyPoints, body)
		b.WriteString("\n")
		section(&b, "Formulas")
		bullets(&b, "  ", det.Formulas, lipgloss.NewStyle().Foreground(theme.Secondary))
		b.WriteString("\n")
		if len(det.Concepts) > 0 {
			section(&b, "Concepts")
			for _, c := range det.Concepts {
				b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Term) + dim.Render(": ") + c.Definition + "\n")
			}
			b.WriteString("\n")
		}
	}

	if ch.Guide == nil && ch.Details == nil {
		b.WriteString(theme.Hint.Render("No study notes for this chapter yet."))
		b.WriteString("\n\n")
	}

	switch {
	case d.briefLoading:
		b.WriteString(theme.Hint.Render("Preparing your chapter brief..."))
		b.WriteString("\n")
	case d.brief != nil:
		section(&b, "AI brief")
		b.WriteString(body.Render(d.brief.Synopsis))
		b.WriteString("\n\n")
		bullets(&b, "• ", d.brief.KnowledgePoints, body)
		bullets(&b, "★ ", d.brief.ExaminerTips, lipgloss.NewStyle().Foreground(theme.Accent))
		bullets(&b, "  ", d.brief.FormulaVault, lipgloss.NewStyle().Foreground(theme.Secondary))
	}

	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + d.errMsg))
	}

	lines := strings.Split(b.String(), "\n")
	d.scroll = min(d.scroll, max(len(lines)-height, 0))
	end := min(d.scroll+height, len(lines))
	return lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(lines[d.scroll:end], "\n"))
}

func section(b *strings.Builder, title string) {
	b.WriteString(theme.Heading.Render(title))
	b.WriteString("\n")
}

func bullets(b *strings.Builder, mark string, items []string, style lipgloss.Style) {
	for _, item := range items {
		b.WriteString(style.Render(mark + item))
		b.WriteString("\n")
	}
}
