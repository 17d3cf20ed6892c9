package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/problemgen"
	"github.com/abhisek/eliteprep/internal/store"
)

// fakeGen serves queued content. When gate is set every call announces
// itself on entered and blocks until gate is closed, ignoring ctx so that
// late results can be observed.
type fakeGen struct {
	mu          sync.Mutex
	questions   []problemgen.Question
	batch       []problemgen.Question
	paper       []problemgen.PaperQuestion
	elaboration string
	err         error
	calls       []string

	gate    chan struct{}
	entered chan struct{}
}

func (g *fakeGen) hold() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gate = make(chan struct{})
	g.entered = make(chan struct{}, 8)
}

func (g *fakeGen) release() {
	g.mu.Lock()
	gate := g.gate
	g.gate = nil
	g.mu.Unlock()
	close(gate)
}

func (g *fakeGen) call(name string) error {
	g.mu.Lock()
	g.calls = append(g.calls, name)
	gate, entered := g.gate, g.entered
	err := g.err
	g.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	return err
}

func (g *fakeGen) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *fakeGen) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *fakeGen) Question(_ context.Context, topic string, d problemgen.Difficulty) (*problemgen.Question, error) {
	if err := g.call(fmt.Sprintf("question %s %s", topic, d)); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	q := sampleQuestion("What is 1+1?", "2", "1", "2", "3", "4")
	if len(g.questions) > 0 {
		q = g.questions[0]
		g.questions = g.questions[1:]
	}
	q.Topic = topic
	return &q, nil
}

func (g *fakeGen) Batch(_ context.Context, topic string, d problemgen.Difficulty, n int) ([]problemgen.Question, error) {
	if err := g.call(fmt.Sprintf("batch %s %s %d", topic, d, n)); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]problemgen.Question, len(g.batch))
	for i, q := range g.batch {
		out[i] = *q.Clone()
	}
	return out, nil
}

func (g *fakeGen) Elaborate(_ context.Context, q *problemgen.Question) (string, error) {
	if err := g.call("elaborate " + q.Text); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elaboration, nil
}

func (g *fakeGen) MockPaper(_ context.Context, title string) ([]problemgen.PaperQuestion, error) {
	if err := g.call("paper " + title); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paper, nil
}

type fakeMistakes struct {
	mu    sync.Mutex
	items []mistakes.Mistake
}

func (f *fakeMistakes) Append(_ context.Context, m mistakes.Mistake) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, m)
	return nil
}

func (f *fakeMistakes) List() []mistakes.Mistake {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mistakes.Mistake(nil), f.items...)
}

type fakeTopics struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeTopics) Complete(_ context.Context, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, topic)
	return nil
}

func (f *fakeTopics) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type harness struct {
	m        *Machine
	gen      *fakeGen
	kv       *store.MemoryKV
	mistakes *fakeMistakes
	topics   *fakeTopics
}

var testNow = time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)

// testConfig keeps the real countdown from firing; tests drive it with
// tickN.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TickInterval = time.Hour
	return cfg
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		gen:      &fakeGen{},
		kv:       store.NewMemoryKV(),
		mistakes: &fakeMistakes{},
		topics:   &fakeTopics{},
	}
	ids := 0
	h.m = New(cfg, Deps{
		Generator: h.gen,
		Store:     h.kv,
		Mistakes:  h.mistakes,
		Topics:    h.topics,
		Now:       func() time.Time { return testNow },
		NewID: func() string {
			ids++
			return fmt.Sprintf("id%d", ids)
		},
	})
	t.Cleanup(h.m.Leave)
	return h
}

// stored decodes the snapshot currently in the store.
func (h *harness) stored(t *testing.T) (Snapshot, bool) {
	t.Helper()
	data, ok, err := h.kv.Get(context.Background(), store.KeySession)
	require.NoError(t, err)
	if !ok {
		return Snapshot{}, false
	}
	snap, err := Decode(data)
	require.NoError(t, err)
	return snap, true
}

func (h *harness) save(t *testing.T, snap Snapshot) {
	t.Helper()
	data, err := Encode(snap)
	require.NoError(t, err)
	require.NoError(t, h.kv.Set(context.Background(), store.KeySession, data))
}

// tickN delivers n countdown ticks to the running timer.
func tickN(m *Machine, n int) {
	for range n {
		m.mu.Lock()
		gen := m.timerGen
		m.mu.Unlock()
		m.tick(gen)
	}
}

func timerRunning(m *Machine) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}
