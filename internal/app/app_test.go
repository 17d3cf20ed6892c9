package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eliteprep/internal/config"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/screens/home"
	"github.com/abhisek/eliteprep/internal/session"
)

type escScreen struct {
	handles bool
	escapes int
}

func (s *escScreen) Init() tea.Cmd { return nil }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		s.escapes++
	}
	return s, nil
}
func (s *escScreen) View(int, int) string { return "esc" }
func (s *escScreen) Title() string        { return "Esc" }
func (s *escScreen) HandlesEscape() bool  { return s.handles }

func memoryServices(t *testing.T) *Services {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}
	t.Setenv("ELITEPREP_STORAGE_BACKEND", "memory")

	cfg, err := config.Load("")
	require.NoError(t, err)
	svc, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestBuild_Offline(t *testing.T) {
	svc := memoryServices(t)

	assert.Error(t, svc.LLMErr)
	assert.False(t, svc.Gateway.Available())
	assert.Nil(t, svc.Machine)
	assert.Nil(t, svc.Tutor)
	assert.Nil(t, svc.Events)
	assert.NotNil(t, svc.Mistakes)
	assert.NotNil(t, svc.Topics)
}

func TestBuild_MockProvider(t *testing.T) {
	t.Setenv("ELITEPREP_LLM_PROVIDER", "mock")
	svc := memoryServices(t)

	require.NoError(t, svc.LLMErr)
	assert.NotNil(t, svc.Machine)
	assert.NotNil(t, svc.Tutor)
	assert.Equal(t, session.DefaultConfig().DefaultTopic, svc.Config.Quiz.DefaultTopic)
}

func TestWelcomeHandsOverToHub(t *testing.T) {
	m := newAppModel(memoryServices(t).HomeDeps())
	require.NotNil(t, m.Init())

	m, cmd := update(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())

	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscape(t *testing.T) {
	m := newAppModel(memoryServices(t).HomeDeps())

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the root screen is ignored")

	s := &escScreen{}
	m.router.Push(s)

	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Zero(t, s.escapes)

	s.handles = true
	update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, s.escapes)
}

func TestHeaderCounts(t *testing.T) {
	svc := memoryServices(t)
	require.NoError(t, svc.Mistakes.Append(context.Background(), mistakes.Mistake{ID: "m1", Topic: "Surds"}))
	require.NoError(t, svc.Topics.Complete(context.Background(), "Surds"))

	m := newAppModel(svc.HomeDeps())
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.render()
	assert.Contains(t, view, "✗ 1")
	assert.Contains(t, view, "✓ 1 topics")
}
