package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/components"
	"github.com/abhisek/eliteprep/internal/ui/theme"
)

const titleCompact = "E L I T E P R E P"

// contentWidth returns the uniform inner width shared by all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return max(min(frameWidth-6, 64), 20)
}

func renderTitle(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCompact)
	sub := theme.Subtitle.Render("Edexcel IAL Mathematics")
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title + "\n" + sub)
}

// renderStatsBar renders completed topics and logged mistakes in a box
// matching the content width.
func renderStatsBar(completed, total, mistakes, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	mistakeStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var done, miss string
	if compact {
		done = doneStyle.Render(fmt.Sprintf("✓%d/%d", completed, total))
		miss = mistakeStyle.Render(fmt.Sprintf("✗%d", mistakes))
	} else {
		done = doneStyle.Render(fmt.Sprintf("✓ %d/%d TOPICS", completed, total))
		miss = mistakeStyle.Render(fmt.Sprintf("✗ %d TO REVIEW", mistakes))
	}
	if mistakes == 0 {
		miss = dim.Render("✗ 0")
		if !compact {
			miss = dim.Render("✗ NOTHING TO REVIEW")
		}
	}

	bar := components.Tally{Done: completed, Total: total, Width: cw - 6, Caption: components.CaptionPercent}.View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(done + "   " + miss + "\n" + bar)
}

// renderWisdom renders the daily quote, or a hint while it loads.
func renderWisdom(wisdom string, cw int) string {
	if wisdom == "" {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Hint.Render("..."))
	}
	return theme.Quote.Width(cw).Render("“" + wisdom + "”")
}

// renderMenu renders each item as a bordered button, or as plain lines in
// compact mode.
func renderMenu(m components.Menu, cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(m.View())
	}

	btn := lipgloss.NewStyle().
		Width(26).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	selected := btn.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normal := btn.Foreground(theme.Text).BorderForeground(theme.Border)
	disabled := btn.Foreground(theme.TextDim).BorderForeground(theme.Border)

	var buttons []string
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons = append(buttons, disabled.Render(item.Label))
		case i == m.Selected:
			buttons = append(buttons, selected.Render("▸ "+item.Label))
		default:
			buttons = append(buttons, normal.Render(item.Label))
		}
	}

	// Two columns keep nine buttons on a normal terminal.
	half := (len(buttons) + 1) / 2
	left := strings.Join(buttons[:half], "\n")
	right := strings.Join(buttons[half:], "\n")
	block := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// renderLLMBanner warns that AI features are unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate questions (see eliteprep --help)")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border frame centered in
// the given area.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
