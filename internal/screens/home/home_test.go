package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/gateway"
	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screens/arena"
	"github.com/abhisek/eliteprep/internal/screens/history"
	"github.com/abhisek/eliteprep/internal/screens/placeholder"
	"github.com/abhisek/eliteprep/internal/screens/syllabus"
	"github.com/abhisek/eliteprep/internal/screens/tutorchat"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/abhisek/eliteprep/internal/tutor"
)

func offlineDeps(t *testing.T) Deps {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	ledger, err := mistakes.Open(ctx, kv, nil)
	require.NoError(t, err)
	tracker, err := progress.Open(ctx, kv, nil)
	require.NoError(t, err)
	return Deps{Mistakes: ledger, Topics: tracker}
}

// selectItem moves the cursor to label and presses enter.
func selectItem(t *testing.T, h *HomeScreen, label string) tea.Msg {
	t.Helper()
	idx := -1
	for i, item := range h.menu.Items {
		if item.Label == label {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "menu item %q", label)
	h.menu.Selected = idx
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func pushed(t *testing.T, msg tea.Msg) any {
	t.Helper()
	p, ok := msg.(router.PushScreenMsg)
	require.True(t, ok, "expected push, got %T", msg)
	return p.Screen
}

func TestOfflineHub(t *testing.T) {
	h := New(offlineDeps(t))

	assert.Nil(t, h.Init())
	assert.Equal(t, tutor.FallbackWisdom, h.wisdom)
	assert.Contains(t, h.View(120, 40), "Set an LLM API key")

	assert.IsType(t, &placeholder.PlaceholderScreen{}, pushed(t, selectItem(t, h, "Practice")))
	assert.IsType(t, &placeholder.PlaceholderScreen{}, pushed(t, selectItem(t, h, "Ask the Tutor")))
	assert.IsType(t, &syllabus.SyllabusScreen{}, pushed(t, selectItem(t, h, "Curriculum")))
	assert.IsType(t, &history.HistoryScreen{}, pushed(t, selectItem(t, h, "Mistakes")))

	usageItem := h.menu.Items[7]
	assert.Equal(t, "AI Usage", usageItem.Label)
	assert.True(t, usageItem.Disabled)
}

func TestHubWithAI(t *testing.T) {
	deps := offlineDeps(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Small steps, every day."})
	deps.Tutor = tutor.New(gateway.New(mock, gateway.DefaultConfig()), nil)
	deps.Machine = session.New(session.DefaultConfig(), session.Deps{
		Store:    store.NewMemoryKV(),
		Mistakes: deps.Mistakes,
		Topics:   deps.Topics,
	})
	t.Cleanup(deps.Machine.Leave)

	h := New(deps)
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())
	assert.Contains(t, h.View(120, 40), "Small steps, every day.")
	assert.NotContains(t, h.View(120, 40), "Set an LLM API key")

	assert.IsType(t, &arena.ArenaScreen{}, pushed(t, selectItem(t, h, "Mock Exam")))
	assert.IsType(t, &tutorchat.ChatScreen{}, pushed(t, selectItem(t, h, "Ask the Tutor")))
}

func TestFocusRefreshesCounts(t *testing.T) {
	deps := offlineDeps(t)
	h := New(deps)
	assert.Equal(t, MascotIdle, pickMascot(h.mistakes, h.completed))

	ctx := context.Background()
	require.NoError(t, deps.Topics.Complete(ctx, "Surds"))
	h.Focus()
	assert.Equal(t, 1, h.completed)
	assert.Equal(t, MascotCelebrating, pickMascot(h.mistakes, h.completed))

	for range AlertMistakes {
		require.NoError(t, deps.Mistakes.Append(ctx, mistakes.Mistake{ID: mistakes.NewID(), Topic: "Surds"}))
	}
	h.Focus()
	assert.Equal(t, AlertMistakes, h.mistakes)
	assert.Equal(t, MascotAlert, pickMascot(h.mistakes, h.completed))
	assert.Equal(t, "5", h.menu.Items[4].Detail)
}

func TestQuit(t *testing.T) {
	h := New(offlineDeps(t))
	assert.IsType(t, tea.QuitMsg{}, selectItem(t, h, "Quit"))

	_, cmd := h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
