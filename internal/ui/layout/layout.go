// Package layout draws the chrome around every screen: the status bar,
// the key hint bar and the frame that stacks them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// Smallest terminal the screens are designed for.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one entry of the footer bar, e.g. {"Enter", "Submit"}.
type KeyHint struct {
	Key         string
	Description string
}

// Status is what the header bar reports.
type Status struct {
	Title     string
	Mistakes  int
	Completed int
}

// TooSmall reports whether a terminal cannot fit the screens.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// MinSizeMessage asks the user to enlarge the terminal.
func MinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("Terminal too small!\n\nElitePrep needs at least %dx%d.\nCurrent size: %dx%d",
			MinWidth, MinHeight, width, height))
}

// bar wraps a single line of content in the rounded card used for both
// header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// Header renders the brand on the left, the screen title centred and the
// mistake and topic counters on the right.
func Header(s Status, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ElitePrep")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(s.Title)
	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", s.Mistakes)),
		"   ",
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d topics", s.Completed)),
	)

	// Border and padding take four columns.
	inner := max(width-4, 0)
	bw, tw, cw := lipgloss.Width(brand), lipgloss.Width(title), lipgloss.Width(counters)
	left := max((inner-tw)/2-bw, 1)
	right := max(inner-bw-left-tw-cw, 1)

	return bar(brand+strings.Repeat(" ", left)+title+strings.Repeat(" ", right)+counters, width)
}

// Footer renders key hints separated by wide gaps.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// BodyHeight is the number of rows left for a screen between header and
// footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// Frame stacks header, body and footer, padding the body so the footer
// sits on the bottom row.
func Frame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// FormatClock renders a countdown in seconds as MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
