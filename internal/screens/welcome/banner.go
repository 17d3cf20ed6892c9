package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/eliteprep/internal/ui/theme"
)

const wordmark = `
 ███████╗██╗     ██╗████████╗███████╗██████╗ ██████╗ ███████╗██████╗
 ██╔════╝██║     ██║╚══██╔══╝██╔════╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
 █████╗  ██║     ██║   ██║   █████╗  ██████╔╝██████╔╝█████╗  ██████╔╝
 ██╔══╝  ██║     ██║   ██║   ██╔══╝  ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ███████╗███████╗██║   ██║   ███████╗██║     ██║  ██║███████╗██║
 ╚══════╝╚══════╝╚═╝   ╚═╝   ╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

// wordmarkWidth is the narrowest terminal the block letters fit.
const wordmarkWidth = 72

// Banner renders the block-letter name, or spaced capitals when the
// terminal is narrower than the block letters.
func Banner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < wordmarkWidth {
		return style.Render("E L I T E P R E P")
	}
	return style.Render(wordmark)
}
