package arena

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screens/summary"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/store"
)

type stubGen struct {
	mu    sync.Mutex
	calls []string
	batch []problemgen.Question
	paper []problemgen.PaperQuestion
}

func (g *stubGen) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
}

func (g *stubGen) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *stubGen) Question(_ context.Context, topic string, d problemgen.Difficulty) (*problemgen.Question, error) {
	g.record(fmt.Sprintf("question %s %s", topic, d))
	return &problemgen.Question{
		Text:        "Simplify sqrt(12)",
		Options:     []string{"3sqrt(2)", "2sqrt(3)", "6", "4sqrt(3)"},
		Answer:      "2sqrt(3)",
		Explanation: "12 = 4 x 3",
		Topic:       topic,
		Origin:      problemgen.OriginAI,
	}, nil
}

func (g *stubGen) Batch(_ context.Context, topic string, d problemgen.Difficulty, n int) ([]problemgen.Question, error) {
	g.record(fmt.Sprintf("batch %s %s %d", topic, d, n))
	return g.batch, nil
}

func (g *stubGen) Elaborate(_ context.Context, q *problemgen.Question) (string, error) {
	g.record("elaborate")
	return "Write 12 as 4 x 3 and take the root of 4.", nil
}

func (g *stubGen) MockPaper(_ context.Context, title string) ([]problemgen.PaperQuestion, error) {
	g.record("paper " + title)
	return g.paper, nil
}

type harness struct {
	arena   *ArenaScreen
	machine *session.Machine
	gen     *stubGen
	kv      *store.MemoryKV
	ledger  *mistakes.Ledger
	topics  *progress.Tracker
}

func newHarness(t *testing.T, entry Entry, topic string) *harness {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ledger, err := mistakes.Open(ctx, kv, nil)
	require.NoError(t, err)
	tracker, err := progress.Open(ctx, kv, nil)
	require.NoError(t, err)

	gen := &stubGen{
		batch: []problemgen.Question{
			{Text: "A", Options: []string{"1", "2"}, Answer: "1", Topic: "Surds"},
			{Text: "B", Options: []string{"3", "4"}, Answer: "4", Topic: "Surds"},
		},
		paper: []problemgen.PaperQuestion{
			{Number: 1, Text: "Differentiate x^3", Marks: 3},
		},
	}
	cfg := session.DefaultConfig()
	cfg.TickInterval = time.Hour
	m := session.New(cfg, session.Deps{
		Generator: gen,
		Store:     kv,
		Mistakes:  ledger,
		Topics:    tracker,
	})
	t.Cleanup(m.Leave)

	return &harness{
		arena:   New(m, entry, topic),
		machine: m,
		gen:     gen,
		kv:      kv,
		ledger:  ledger,
		topics:  tracker,
	}
}

// exec runs a command with a short deadline so blink and tick commands
// that wait on timers are dropped.
func exec(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

// run executes cmd and feeds arena-internal messages back into the
// screen until nothing is left. Messages meant for the router are
// returned.
func (h *harness) run(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := exec(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case openedMsg, intentDoneMsg, ChangedMsg:
			_, next := h.arena.Update(msg)
			queue = append(queue, next)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func (h *harness) start() []tea.Msg {
	return h.run(h.arena.Init())
}

func (h *harness) press(key tea.KeyPressMsg) []tea.Msg {
	_, cmd := h.arena.Update(key)
	return h.run(cmd)
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestPractice_FetchesOnEntry(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	h.start()

	assert.Equal(t, []string{"question Surds Medium"}, h.gen.Calls())
	assert.Equal(t, "Practice", h.arena.Title())
	assert.Contains(t, h.arena.View(100, 30), "Simplify sqrt(12)")
}

func TestPractice_CorrectAnswerCompletesTopic(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	h.start()

	h.press(keyRune('b'))

	pf := h.arena.view.Practice()
	require.NotNil(t, pf)
	assert.Equal(t, session.FeedbackCorrect, pf.Feedback)
	assert.True(t, h.topics.Has("Surds"))
	assert.Zero(t, h.ledger.Len())
	assert.Contains(t, h.arena.View(100, 30), "Correct!")
}

func TestPractice_WrongAnswerThenElaborate(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	h.start()

	h.press(keyRune('1'))
	require.Equal(t, 1, h.ledger.Len())
	mk := h.ledger.List()[0]
	assert.Equal(t, "3sqrt(2)", mk.YourAnswer)
	assert.Equal(t, "2sqrt(3)", mk.CorrectAnswer)

	// Option keys are ignored once graded.
	h.press(keyRune('b'))
	assert.Equal(t, 1, h.ledger.Len())

	h.press(keyRune('e'))
	assert.Contains(t, h.arena.view.Practice().Elaboration, "root of 4")

	h.press(keyRune('n'))
	assert.Len(t, h.gen.Calls(), 3)
	assert.False(t, h.arena.view.Practice().Graded())
}

func TestPractice_RevealRecordsUnanswered(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	h.start()

	h.press(keyRune('s'))
	require.Equal(t, 1, h.ledger.Len())
	assert.True(t, h.ledger.List()[0].Unanswered())
}

func TestPractice_DifficultyAndTopic(t *testing.T) {
	h := newHarness(t, EntryPractice, "")
	h.start()
	assert.Equal(t, "question Algebraic Expressions Medium", h.gen.Calls()[0])

	h.press(keyCode(tea.KeyTab))
	assert.Equal(t, "question Algebraic Expressions Hard", h.gen.Calls()[1])

	h.press(keyRune('t'))
	assert.True(t, h.arena.HandlesEscape())
	for _, r := range "surds" {
		h.press(keyRune(r))
	}
	h.press(keyCode(tea.KeyEnter))

	assert.False(t, h.arena.editTopic)
	assert.Equal(t, "question Surds Hard", h.gen.Calls()[2])
}

func TestResumePrompt(t *testing.T) {
	h := newHarness(t, EntryExam, "Surds")
	q := problemgen.Question{Text: "Saved", Options: []string{"x", "y"}, Answer: "y", Topic: "Surds"}
	data, err := session.Encode(session.Snapshot{
		Difficulty: problemgen.Hard,
		Flow:       &session.PracticeFlow{Question: &q},
	})
	require.NoError(t, err)
	require.NoError(t, h.kv.Set(context.Background(), store.KeySession, data))

	h.start()
	assert.Equal(t, "Saved Session", h.arena.Title())
	assert.Empty(t, h.gen.Calls(), "entry flow waits for the prompt to be resolved")

	// Answer keys are ignored while the prompt is up.
	h.press(keyRune('b'))
	assert.Zero(t, h.ledger.Len())

	h.press(keyRune('r'))
	assert.Equal(t, "Practice", h.arena.Title())
	assert.Equal(t, "Saved", h.arena.view.Practice().Question.Text)
	assert.Equal(t, problemgen.Hard, h.arena.view.Difficulty)
	assert.Empty(t, h.gen.Calls())
}

func TestResumePrompt_StartFresh(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	q := problemgen.Question{Text: "Saved", Options: []string{"x", "y"}, Answer: "y", Topic: "Surds"}
	data, err := session.Encode(session.Snapshot{Difficulty: problemgen.Medium, Flow: &session.PracticeFlow{Question: &q}})
	require.NoError(t, err)
	require.NoError(t, h.kv.Set(context.Background(), store.KeySession, data))

	h.start()
	h.press(keyRune('f'))

	assert.Equal(t, []string{"question Surds Medium"}, h.gen.Calls())
	assert.Equal(t, "Simplify sqrt(12)", h.arena.view.Practice().Question.Text)
}

func TestExam_AnswerNavigateSubmit(t *testing.T) {
	h := newHarness(t, EntryExam, "Surds")
	h.start()

	require.Equal(t, []string{"batch Surds Medium 5"}, h.gen.Calls())
	assert.Equal(t, "Mock Exam", h.arena.Title())
	assert.Contains(t, h.arena.View(100, 30), "10:00")

	h.press(keyRune('a'))
	h.press(keyCode(tea.KeyRight))
	h.press(keyRune('a'))
	assert.Equal(t, 2, h.arena.view.Exam().Answered())

	out := h.press(keyRune('s'))
	require.Len(t, out, 1)
	push, ok := out[0].(router.PushScreenMsg)
	require.True(t, ok, "expected the exam report to be pushed, got %T", out[0])
	assert.IsType(t, &summary.SummaryScreen{}, push.Screen)

	assert.True(t, h.arena.view.Exam().Submitted)
	assert.Equal(t, 1, h.arena.view.Exam().Score())
	require.Equal(t, 1, h.ledger.Len())
	assert.Equal(t, "3", h.ledger.List()[0].YourAnswer)
	assert.True(t, h.topics.Has("Surds"))

	// Refreshing again must not push the report twice.
	_, cmd := h.arena.Update(ChangedMsg{})
	assert.Empty(t, h.run(cmd))
}

func TestExam_QueuedKeysApplyInPressOrder(t *testing.T) {
	h := newHarness(t, EntryExam, "Surds")
	h.start()

	// Three keys pressed before any of their commands runs.
	_, pick := h.arena.Update(keyRune('a'))
	_, next := h.arena.Update(keyCode(tea.KeyRight))
	_, submit := h.arena.Update(keyRune('s'))
	require.NotNil(t, pick)
	require.NotNil(t, next)
	require.NotNil(t, submit)

	// Start them in reverse; the later ones must wait for the pick.
	msgs := make(chan tea.Msg, 3)
	for _, cmd := range []tea.Cmd{submit, next, pick} {
		go func() { msgs <- cmd() }()
	}
	for range 3 {
		select {
		case msg := <-msgs:
			done, ok := msg.(intentDoneMsg)
			require.True(t, ok, "got %T", msg)
			assert.NoError(t, done.Err)
		case <-time.After(2 * time.Second):
			t.Fatal("queued exam intents did not finish")
		}
	}

	ex := h.machine.View().Exam()
	require.True(t, ex.Submitted)
	require.NotNil(t, ex.Answers[0])
	assert.Equal(t, "1", *ex.Answers[0])
	assert.Nil(t, ex.Answers[1])
	assert.Equal(t, 1, ex.Score())
	require.Equal(t, 1, h.ledger.Len())
	assert.Equal(t, mistakes.Unanswered, h.ledger.List()[0].YourAnswer)
}

func TestExam_FinishReturnsToHub(t *testing.T) {
	h := newHarness(t, EntryExam, "Surds")
	h.start()
	h.press(keyRune('s'))

	out := h.press(keyRune('h'))
	require.Len(t, out, 1)
	assert.IsType(t, router.PopToRootMsg{}, out[0])

	_, ok, err := h.kv.Get(context.Background(), store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "finishing an exam clears the saved session")
}

func TestPapers_SearchAndGenerate(t *testing.T) {
	h := newHarness(t, EntryPapers, "")
	h.start()
	assert.Equal(t, "Past Papers", h.arena.Title())
	assert.Empty(t, h.gen.Calls())

	for _, r := range "statistics" {
		h.press(keyRune(r))
	}
	view := h.arena.View(100, 30)
	assert.Contains(t, view, "Statistics 1")
	assert.NotContains(t, view, "Pure Math 1")

	h.press(keyCode(tea.KeyEnter))
	assert.Equal(t, []string{"paper Jan 2024 - Statistics 1"}, h.gen.Calls())
	assert.Contains(t, h.arena.View(100, 30), "Differentiate x^3")
	assert.True(t, h.arena.HandlesEscape())

	h.press(keyCode(tea.KeyEscape))
	assert.Nil(t, h.arena.view.Paper().Selected)
	assert.False(t, h.arena.HandlesEscape())
}

func TestClose_KeepsSavedSession(t *testing.T) {
	h := newHarness(t, EntryPractice, "Surds")
	h.start()
	h.arena.Close()

	_, ok, err := h.kv.Get(context.Background(), store.KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
}
