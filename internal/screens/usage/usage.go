// Package usage shows recorded AI requests: token totals per purpose and
// per model, and the most recent calls.
package usage

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/screen"
	"github.com/abhisek/eliteprep/internal/store"
	"github.com/abhisek/eliteprep/internal/ui/layout"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// RecentLimit bounds the recent-calls tab.
const RecentLimit = 50

type tab int

const (
	tabPurpose tab = iota
	tabModel
	tabRecent
)

var tabNames = []string{"By purpose", "By model", "Recent calls"}

type loadedMsg struct {
	ByPurpose []store.LLMUsage
	ByModel   []store.LLMUsage
	Recent    []store.LLMEvent
	Err       error
}

// UsageScreen implements screen.Screen.
type UsageScreen struct {
	repo         store.EventRepo
	byPurpose    []store.LLMUsage
	byModel      []store.LLMUsage
	recent       []store.LLMEvent
	tab          tab
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*UsageScreen)(nil)
var _ screen.KeyHintProvider = (*UsageScreen)(nil)

func New(repo store.EventRepo) *UsageScreen {
	return &UsageScreen{repo: repo}
}

func (s *UsageScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()
		var msg loadedMsg
		if msg.ByPurpose, msg.Err = repo.LLMUsageByPurpose(ctx); msg.Err != nil {
			return msg
		}
		if msg.ByModel, msg.Err = repo.LLMUsageByModel(ctx); msg.Err != nil {
			return msg
		}
		msg.Recent, msg.Err = repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: RecentLimit})
		return msg
	}
}

func (s *UsageScreen) Title() string {
	return "AI Usage"
}

func (s *UsageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch view"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UsageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.byPurpose, s.byModel, s.recent = msg.ByPurpose, msg.ByModel, msg.Recent
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			s.tab = (s.tab + 1) % tab(len(tabNames))
			s.scrollOffset = 0
		case "shift+tab":
			s.tab = (s.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < s.rowCount()-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *UsageScreen) rowCount() int {
	switch s.tab {
	case tabPurpose:
		return len(s.byPurpose)
	case tabModel:
		return len(s.byModel)
	default:
		return len(s.recent)
	}
}

func (s *UsageScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading usage...")
	}

	var b strings.Builder

	var calls, in, out int
	for _, u := range s.byPurpose {
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d requests   %d tokens in   %d tokens out\n", calls, in, out)))
	b.WriteString("\n")

	var tabs []string
	for i, name := range tabNames {
		if tab(i) == s.tab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(name))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 72), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	lines := s.rows()
	if len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No AI requests recorded yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := min(s.scrollOffset, len(lines))
	end := min(start+maxVisible, len(lines))
	block := strings.Join(lines[start:end], "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if end < len(lines) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(lines)-end)))
	}
	return b.String()
}

func (s *UsageScreen) rows() []string {
	text := lipgloss.NewStyle().Foreground(theme.Text)
	var lines []string
	switch s.tab {
	case tabPurpose, tabModel:
		list, label := s.byPurpose, func(u store.LLMUsage) string { return u.Purpose }
		if s.tab == tabModel {
			list, label = s.byModel, func(u store.LLMUsage) string { return u.Model }
		}
		for _, u := range list {
			lines = append(lines, text.Render(fmt.Sprintf("%-24s %5d calls  %8d in  %8d out  %6dms avg",
				label(u), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)))
		}
	case tabRecent:
		for _, e := range s.recent {
			status := theme.Correct.Render("✓")
			if !e.Success {
				status = theme.Incorrect.Render("✗")
			}
			lines = append(lines, fmt.Sprintf("%s %s", status, text.Render(fmt.Sprintf("%-16s %-18s %-22s %6dms",
				e.Timestamp.Format("02 Jan 15:04:05"), e.Purpose, e.Model, e.LatencyMs))))
		}
	}
	return lines
}
