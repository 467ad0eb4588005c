package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/i18n"
)

func renderPreview(article *api.Article, msgs i18n.Messages, width, height, scroll int) string {
	if article == nil {
		return centerText(msgs.SelectArticle, width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	parts := []string{previewTitleStyle.Width(contentWidth).Render(article.Title)}

	if article.Published != "" {
		published := article.Published
		if len(published) > 10 {
			published = published[:10]
		}
		parts = append(parts, previewMetaStyle.Render(msgs.PublishedLabel+" "+published))
	}

	summary := article.Summary
	if summary == "" {
		summary = msgs.NoSummary
	}
	parts = append(parts, "", previewBodyStyle.Width(contentWidth).Render(wrapText(summary, contentWidth)))

	if article.PDFLink != "" {
		parts = append(parts, "", previewLinkStyle.Width(contentWidth).Render(msgs.PDFLabel+": "+article.PDFLink))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
