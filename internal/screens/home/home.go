// Package home is the hub: daily wisdom, progress counts and the main
// menu that opens every other screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eliteprep/internal/curriculum"
	"github.com/abhisek/eliteprep/internal/mistakes"
	"github.com/abhisek/eliteprep/internal/progress"
	"github.com/abhisek/eliteprep/internal/router"
	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/screens/arena"
	"github.com/abhisek/eliteprep/internal/screens/history"
	"github.com/abhisek/eliteprep/internal/screens/placeholder"
	"github.com/abhisek/eliteprep/internal/screens/plan"
	"github.com/abhisek/eliteprep/internal/screens/syllabus"
	"github.com/abhisek/eliteprep/internal/screens/tutorchat"
	"github.com/abhisek/eliteprep/internal/screens/usage"
	"github.com/abhisek/eliteprep/internal/session"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/abhisek/eliteprep/internal/tutor"
	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/layout"
)

// Deps wires the hub to the rest of the app. Machine and Tutor are nil
// when no AI provider is configured; Events is nil without a database.
type Deps struct {
	Machine  *session.Machine
	Mistakes *mistakes.Ledger
	Topics   *progress.Tracker
	Tutor    *tutor.Tutor
	Events   store.EventRepo
}

type wisdomMsg struct {
	Text string
}

// HomeScreen is the root screen of the app.
type HomeScreen struct {
	deps        Deps
	menu        components.Menu
	wisdom      string
	mistakes    int
	completed   int
	totalTopics int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Focuser = (*HomeScreen)(nil)

// New creates the hub.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:        deps,
		totalTopics: len(curriculum.AllTopics()),
	}
	h.menu = components.NewMenu(h.items())
	h.refresh()
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	aiScreen := func(title string, build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			if d.Tutor == nil {
				return push(placeholder.New(title))
			}
			return push(build())
		}
	}
	sessionScreen := func(title string, entry arena.Entry) func() tea.Cmd {
		return func() tea.Cmd {
			if d.Machine == nil {
				return push(placeholder.New(title))
			}
			return push(arena.New(d.Machine, entry, ""))
		}
	}

	return []components.MenuItem{
		{Label: "Practice", Action: sessionScreen("Practice", arena.EntryPractice)},
		{Label: "Mock Exam", Action: sessionScreen("Mock Exam", arena.EntryExam)},
		{Label: "Past Papers", Action: sessionScreen("Past Papers", arena.EntryPapers)},
		{Label: "Curriculum", Action: func() tea.Cmd {
			return push(syllabus.New(d.Topics, d.Tutor, h.practiceFunc()))
		}},
		{Label: "Mistakes", Action: func() tea.Cmd {
			return push(history.New(d.Mistakes, d.Tutor, h.practiceFunc()))
		}},
		{Label: "Study Plan", Action: aiScreen("Study Plan", func() screen.Screen {
			return plan.New(d.Tutor)
		})},
		{Label: "Ask the Tutor", Action: aiScreen("Tutor", func() screen.Screen {
			return tutorchat.New(d.Tutor, "")
		})},
		{Label: "AI Usage", Disabled: d.Events == nil, Action: func() tea.Cmd {
			return push(usage.New(d.Events))
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

// practiceFunc returns nil when sessions are unavailable so that the
// screens hide their retry actions.
func (h *HomeScreen) practiceFunc() func(topic string) screen.Screen {
	if h.deps.Machine == nil {
		return nil
	}
	m := h.deps.Machine
	return func(topic string) screen.Screen {
		return arena.New(m, arena.EntryPractice, topic)
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	tu := h.deps.Tutor
	if tu == nil {
		h.wisdom = tutor.FallbackWisdom
		return nil
	}
	return func() tea.Msg {
		return wisdomMsg{Text: tu.DailyWisdom(context.Background())}
	}
}

// Focus refreshes the counts when the hub becomes active again.
func (h *HomeScreen) Focus() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	h.mistakes = h.deps.Mistakes.Len()
	h.completed = h.deps.Topics.Len()

	items := h.menu.Items
	for i := range items {
		switch items[i].Label {
		case "Curriculum":
			items[i].Detail = fmt.Sprintf("%d/%d", h.completed, h.totalTopics)
		case "Mistakes":
			items[i].Detail = ""
			if h.mistakes > 0 {
				items[i].Detail = fmt.Sprintf("%d", h.mistakes)
			}
		}
	}
	h.menu.SetItems(items)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wisdomMsg:
		h.wisdom = msg.Text
		return h, nil
	case tea.KeyPressMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to judge the
	// terminal size.
	termHeight := height + 8
	compact := termHeight < 34 || width < 90
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderMascotBox(pickMascot(h.mistakes, h.completed), cw))
	}
	sections = append(sections, renderWisdom(h.wisdom, cw))
	if h.deps.Machine == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections,
		renderStatsBar(h.completed, h.totalTopics, h.mistakes, cw, compact),
		renderMenu(h.menu, cw, compact),
	)

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}
