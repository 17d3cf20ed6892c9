// Package theme is the single palette and style sheet for every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Slate background, indigo for focus, amber for anything timed.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#0EA5E9")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")

	Text    = lipgloss.Color("#E2E8F0")
	TextDim = lipgloss.Color("#64748B")

	BgDark = lipgloss.Color("#020617")
	BgCard = lipgloss.Color("#0F172A")
	Border = lipgloss.Color("#1E293B")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles.
var (
	Body     = fg(Text)
	Heading  = fg(Secondary).Bold(true)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Hint     = fg(TextDim).Italic(true)
	Quote    = fg(Accent).Italic(true).Align(lipgloss.Center)
)

// Card frames grouped content such as a question or a report.
var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Marking and exam clock.
var (
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)

	Clock = fg(Accent).Bold(true)
	// ClockLow is used for the final minute.
	ClockLow = fg(Error).Bold(true).Blink(true)
)

// Tally bar cells.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)
