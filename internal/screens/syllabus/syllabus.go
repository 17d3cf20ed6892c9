// Package syllabus is the curriculum browser: subjects, chapters and
// topics with completion tracking.
package syllabus

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

type rowKind int

const (
	rowSubject rowKind = iota
	rowChapter
	rowTopic
)

type row struct {
	kind    rowKind
	subject string
	chapter *curriculum.Chapter
	topic   string
}

type toggledMsg struct {
	Topic string
	Done  bool
	Err   error
}

type summaryMsg struct {
	Topic string
	Text  string
	Err   error
}

// PracticeFunc opens a practice session on topic.
type PracticeFunc func(topic string) screen.Screen

// SyllabusScreen lists the catalog with per-chapter progress.
type SyllabusScreen struct {
	tracker  *progress.Tracker
	tutor    *tutor.Tutor
	practice PracticeFunc

	rows         []row
	cursor       int
	scrollOffset int

	notesTopic   string
	notes        string
	notesLoading bool
	errMsg       string
}

var _ screen.Screen = (*SyllabusScreen)(nil)
var _ screen.KeyHintProvider = (*SyllabusScreen)(nil)
var _ screen.EscapeHandler = (*SyllabusScreen)(nil)

// New creates a SyllabusScreen. tu and practice may be nil.
func New(tracker *progress.Tracker, tu *tutor.Tutor, practice PracticeFunc) *SyllabusScreen {
	var rows []row
	for _, subj := range curriculum.Subjects() {
		rows = append(rows, row{kind: rowSubject, subject: subj.Code + "  " + subj.Title})
		for i := range subj.Chapters {
			ch := &subj.Chapters[i]
			rows = append(rows, row{kind: rowChapter, subject: subj.Code, chapter: ch})
			for _, t := range ch.Topics {
				rows = append(rows, row{kind: rowTopic, subject: subj.Code, chapter: ch, topic: t})
			}
		}
	}

	s := &SyllabusScreen{
		tracker:  tracker,
		tutor:    tu,
		practice: practice,
		rows:     rows,
	}
	s.moveCursor(1)
	return s
}

func (s *SyllabusScreen) Init() tea.Cmd {
	return nil
}

func (s *SyllabusScreen) Title() string {
	return "Curriculum"
}

func (s *SyllabusScreen) HandlesEscape() bool {
	return s.notesTopic != ""
}

func (s *SyllabusScreen) KeyHints() []layout.KeyHint {
	if s.notesTopic != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Close notes"}}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Subject"},
	}
	if s.rows[s.cursor].kind == rowTopic {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Done"})
		if s.practice != nil {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Practise"})
		}
		if s.tutor != nil {
			hints = append(hints, layout.KeyHint{Key: "s", Description: "Notes"})
		}
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Chapter"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SyllabusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case toggledMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case summaryMsg:
		if msg.Topic != s.notesTopic {
			return s, nil
		}
		s.notesLoading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.notesTopic = ""
			return s, nil
		}
		s.notes = msg.Text
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *SyllabusScreen) handleKey(key string) tea.Cmd {
	s.errMsg = ""

	if s.notesTopic != "" {
		if key == "esc" {
			s.notesTopic, s.notes, s.notesLoading = "", "", false
		}
		return nil
	}

	r := s.rows[s.cursor]
	switch key {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.jumpSubject(1)
	case "shift+tab":
		s.jumpSubject(-1)
	case "space", " ":
		if r.kind == rowTopic {
			tracker, topic := s.tracker, r.topic
			return func() tea.Msg {
				done, err := tracker.Toggle(context.Background(), topic)
				return toggledMsg{Topic: topic, Done: done, Err: err}
			}
		}
	case "enter":
		if r.kind == rowChapter {
			detail := newChapterScreen(*r.chapter, s.tracker, s.tutor)
			return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		}
		if r.kind == rowTopic && s.practice != nil {
			next := s.practice(r.topic)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "s":
		if r.kind == rowTopic && s.tutor != nil {
			s.notesTopic, s.notes, s.notesLoading = r.topic, "", true
			tu, topic := s.tutor, r.topic
			return func() tea.Msg {
				text, err := tu.TopicSummary(context.Background(), topic)
				return summaryMsg{Topic: topic, Text: text, Err: err}
			}
		}
	}
	return nil
}

// moveCursor moves by delta, skipping subject headers.
func (s *SyllabusScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind != rowSubject {
			s.cursor = next
			return
		}
	}
}

// jumpSubject moves to the first chapter of the next or previous subject.
func (s *SyllabusScreen) jumpSubject(dir int) {
	current := s.rows[s.cursor].subject
	var starts []int
	for i, r := range s.rows {
		if r.kind == rowChapter && (i == 0 || s.rows[i-1].kind == rowSubject) {
			starts = append(starts, i)
		}
	}
	for i, start := range starts {
		if s.rows[start].subject != current {
			continue
		}
		j := i + dir
		if j >= 0 && j < len(starts) {
			s.cursor = starts[j]
		}
		return
	}
}

func (s *SyllabusScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	for top > 0 && s.rows[top-1].kind == rowSubject {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *SyllabusScreen) View(width, height int) string {
	listHeight := height
	var notes string
	if s.notesTopic != "" {
		notes = s.renderNotes(width)
		listHeight = max(height-lipgloss.Height(notes)-1, 3)
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		selected := i == s.cursor
		switch r.kind {
		case rowSubject:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Secondary).Bold(true).PaddingLeft(2).
				Render(strings.ToUpper(r.subject)))
		case rowChapter:
			lines = append(lines, s.renderChapterRow(r, selected, width))
		case rowTopic:
			lines = append(lines, s.renderTopicRow(r, selected))
		}
	}

	out := strings.Join(lines, "\n")
	if notes != "" {
		out += "\n\n" + notes
	}
	if s.errMsg != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.Error).PaddingLeft(2).Render("Error: "+s.errMsg)
	}
	return out
}

func (s *SyllabusScreen) renderChapterRow(r row, selected bool, width int) string {
	done, total := curriculum.ChapterProgress(*r.chapter, s.tracker.Has)
	cursor := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if selected {
		cursor = "▸ "
		style = style.Foreground(theme.Primary)
	}
	nameWidth := max(min(width-32, 40), 12)
	return fmt.Sprintf("  %s%s %s",
		cursor,
		style.Render(fmt.Sprintf("%-*s", nameWidth, truncate(r.chapter.Title, nameWidth))),
		components.Tally{Done: done, Total: total, Width: 19, Caption: components.CaptionCount}.View(),
	)
}

func (s *SyllabusScreen) renderTopicRow(r row, selected bool) string {
	icon := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if s.tracker.Has(r.topic) {
		icon = theme.Correct.Render("●")
		style = style.Foreground(theme.Success)
	}
	cursor := "  "
	if selected {
		cursor = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return fmt.Sprintf("      %s%s %s", cursor, icon, style.Render(r.topic))
}

func (s *SyllabusScreen) renderNotes(width int) string {
	body := theme.Hint.Render("Writing revision notes...")
	if !s.notesLoading {
		body = s.notes
	}
	return theme.Card.Width(min(width-4, 90)).MarginLeft(2).Render(
		theme.Heading.Render(s.notesTopic) + "\n\n" + body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
