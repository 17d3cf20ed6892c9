package syllabus

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/abhisek/eliteprep/internal/tutor"
)

type stubScreen struct{ topic string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.topic }
func (s *stubScreen) Title() string                           { return "Stub" }

func key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func newTracker(t *testing.T) *progress.Tracker {
	t.Helper()
	tr, err := progress.Open(context.Background(), store.NewMemoryKV(), nil)
	require.NoError(t, err)
	return tr
}

func newTutor(responses ...llm.MockResponse) *tutor.Tutor {
	return tutor.New(gateway.New(llm.NewMockProvider(responses...), gateway.DefaultConfig()), nil)
}

// press delivers a key and runs the resulting command once. Internal
// results are fed back; router messages are returned.
func press(s screen.Screen, k string) tea.Msg {
	_, cmd := s.Update(key(k))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case toggledMsg, summaryMsg, briefMsg:
		s.Update(msg)
		return nil
	}
	return msg
}

func TestCursorStartsOnFirstChapter(t *testing.T) {
	s := New(newTracker(t), nil, nil)
	r := s.rows[s.cursor]
	assert.Equal(t, rowChapter, r.kind)
	assert.Equal(t, "p1_1", r.chapter.ID)
	assert.Contains(t, s.View(100, 30), "PURE MATHEMATICS 1")
}

func TestToggleTopic(t *testing.T) {
	tr := newTracker(t)
	s := New(tr, nil, nil)

	press(s, "down")
	require.Equal(t, "Index Laws", s.rows[s.cursor].topic)

	press(s, "space")
	assert.True(t, tr.Has("Index Laws"))
	assert.Contains(t, s.View(100, 30), "1/4")

	press(s, "space")
	assert.False(t, tr.Has("Index Laws"))
}

func TestSpaceOnChapterIsNoop(t *testing.T) {
	tr := newTracker(t)
	s := New(tr, nil, nil)
	assert.Nil(t, press(s, "space"))
	assert.Zero(t, tr.Len())
}

func TestEnter(t *testing.T) {
	var opened string
	s := New(newTracker(t), nil, func(topic string) screen.Screen {
		opened = topic
		return &stubScreen{topic: topic}
	})

	out := press(s, "enter")
	push, ok := out.(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &ChapterScreen{}, push.Screen)

	press(s, "down")
	out = press(s, "enter")
	push, ok = out.(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Index Laws", opened)
	assert.IsType(t, &stubScreen{}, push.Screen)
}

func TestJumpSubject(t *testing.T) {
	s := New(newTracker(t), nil, nil)

	press(s, "tab")
	assert.Equal(t, "p2_1", s.rows[s.cursor].chapter.ID)

	press(s, "tab")
	press(s, "tab")
	assert.Equal(t, "S1", s.rows[s.cursor].subject, "stays on the last subject")

	press(s, "shift+tab")
	assert.Equal(t, "p2_1", s.rows[s.cursor].chapter.ID)
}

func TestTopicNotes(t *testing.T) {
	s := New(newTracker(t), newTutor(llm.MockResponse{Text: "Add indices when multiplying."}), nil)

	press(s, "s")
	assert.Empty(t, s.notesTopic, "notes are only for topics")

	press(s, "down")
	press(s, "s")
	assert.True(t, s.HandlesEscape())
	assert.Contains(t, s.View(100, 40), "Add indices when multiplying.")

	press(s, "esc")
	assert.False(t, s.HandlesEscape())
	assert.Empty(t, s.notes)
}

func TestChapterScreen(t *testing.T) {
	tr := newTracker(t)
	require.NoError(t, tr.Complete(context.Background(), "Surds"))
	ch, err := curriculum.ChapterByID("p1_1")
	require.NoError(t, err)

	brief := `{"synopsis":"Algebra basics.","knowledge_points":["Index laws"],"examiner_tips":["Show working"],"formula_vault":["a^m a^n = a^(m+n)"]}`
	d := newChapterScreen(ch, tr, newTutor(llm.MockResponse{Content: []byte(brief)}))

	view := d.View(100, 80)
	assert.Contains(t, view, "1 of 4 topics completed")
	assert.Contains(t, view, "Lesson guide")
	assert.Contains(t, view, "a^(m/n)")

	press(d, "b")
	require.NotNil(t, d.brief)
	view = d.View(100, 80)
	assert.Contains(t, view, "Algebra basics.")
	assert.Contains(t, view, "Show working")
}

func TestChapterScreenWithoutNotes(t *testing.T) {
	ch, err := curriculum.ChapterByID("p1_3")
	require.NoError(t, err)
	d := newChapterScreen(ch, newTracker(t), nil)

	assert.Contains(t, d.View(100, 40), "No study notes")
	assert.Nil(t, press(d, "b"))
}
