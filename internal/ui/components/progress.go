package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

// Caption selects the text drawn after a Tally bar.
type Caption int

const (
	CaptionNone Caption = iota
	CaptionPercent
	CaptionCount
)

// Tally is a horizontal bar for "done out of total" figures such as
// chapter completion or an exam score.
type Tally struct {
	Done    int
	Total   int
	Width   int
	Caption Caption
}

// Fraction is Done/Total clamped to [0, 1]. An empty tally is 0.
func (t Tally) Fraction() float64 {
	if t.Total <= 0 {
		return 0
	}
	return min(max(float64(t.Done)/float64(t.Total), 0), 1)
}

func (t Tally) caption() string {
	switch t.Caption {
	case CaptionPercent:
		return fmt.Sprintf("  %d%%", int(t.Fraction()*100))
	case CaptionCount:
		return fmt.Sprintf("  %d/%d", t.Done, t.Total)
	}
	return ""
}

// View renders the bar, never narrower than four cells.
func (t Tally) View() string {
	caption := t.caption()
	cells := max(t.Width-lipgloss.Width(caption), 4)
	filled := int(float64(cells) * t.Fraction())

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
}
