package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, collection string, hints string, width int) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if collection != "" {
		left += " · " + lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(collection)
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
