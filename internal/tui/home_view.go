package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`▀█▀ █▀█ █▀█ █▀ █▀▀ ▄▀█ █▀█ █▀▀ █ █`,
	` █  █▄█ █▀▀ ▄█ ██▄ █▀█ █▀▄ █▄▄ █▀█`,
}

// renderWelcome fills the results pane before any collection is chosen.
func renderWelcome(width, height int, prompt string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "", labelStyle.Render(prompt), "")
	lines = append(lines, keyStyle.Render("[tab]")+"  "+helpDimStyle.Render("next field"))
	lines = append(lines, keyStyle.Render("[space]")+"  "+helpDimStyle.Render("select collection"))
	lines = append(lines, keyStyle.Render("[?]")+"  "+helpDimStyle.Render("help"))

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
