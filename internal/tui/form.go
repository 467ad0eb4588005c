package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/config"
)

// field is a focusable element of the form, in tab order.
type field int

const (
	fieldCollections field = iota
	fieldYear
	fieldStartYear
	fieldEndYear
	fieldSearch
	fieldQuery
	fieldSimilar
	fieldResults
	fieldCount
)

func (f field) next() field { return (f + 1) % fieldCount }
func (f field) prev() field { return (f + fieldCount - 1) % fieldCount }

func (f field) isYear() bool {
	return f == fieldYear || f == fieldStartYear || f == fieldEndYear
}

func (f field) isInput() bool {
	return f.isYear() || f == fieldQuery
}

func newYearInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY"
	ti.Prompt = inputPromptStyle.Render("› ")
	ti.CharLimit = 4
	ti.Width = 6
	return ti
}

func newQueryInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = inputPromptStyle.Render("› ")
	ti.CharLimit = 200
	return ti
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// criteria snapshots the year inputs.
func (a *App) criteria() api.Criteria {
	return api.Criteria{
		Year:      a.yearInput.Value(),
		StartYear: a.startInput.Value(),
		EndYear:   a.endInput.Value(),
	}
}

func (a *App) input(f field) *textinput.Model {
	switch f {
	case fieldYear:
		return &a.yearInput
	case fieldStartYear:
		return &a.startInput
	case fieldEndYear:
		return &a.endInput
	case fieldQuery:
		return &a.queryInput
	}
	return nil
}

func renderCollections(cols []config.Collection, selected string, cursor int, focused bool, width int) string {
	lines := make([]string, 0, len(cols))
	for i, c := range cols {
		mark := "( )"
		style := radioStyle
		if c.Name == selected {
			mark = "(•)"
			style = radioSelectedStyle
		}
		label := truncateStr(c.DisplayName(), width-6)
		prefix := "  "
		if focused && i == cursor {
			prefix = radioCursorStyle.Render("> ")
		}
		lines = append(lines, prefix+style.Render(mark+" "+label))
	}
	return strings.Join(lines, "\n")
}

func renderButton(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return buttonDisabledStyle.Render(label)
	case focused:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func (a *App) renderField(f field, label string, labelWidth int) string {
	style := fieldLabelStyle
	if a.focus == f {
		style = fieldLabelActiveStyle
	}
	padded := label + strings.Repeat(" ", max(0, labelWidth-lipgloss.Width(label)))
	return style.Render(padded) + " " + a.input(f).View()
}

func (a *App) renderForm(width int) string {
	m := a.msgs

	labelWidth := max(lipgloss.Width(m.YearLabel), lipgloss.Width(m.StartYearLabel), lipgloss.Width(m.EndYearLabel))

	searchLabel, similarLabel := m.SearchButton, m.SimilarityButton
	if a.loading {
		searchLabel, similarLabel = a.spinner.View()+" "+m.Loading, a.spinner.View()+" "+m.Loading
	}

	parts := []string{
		sectionLabelStyle.Render(m.CollectionLabel),
		renderCollections(a.collections, a.collection, a.radioCursor, a.focus == fieldCollections, width),
		"",
		a.renderField(fieldYear, m.YearLabel, labelWidth),
		a.renderField(fieldStartYear, m.StartYearLabel, labelWidth),
		a.renderField(fieldEndYear, m.EndYearLabel, labelWidth),
		renderButton(searchLabel, a.focus == fieldSearch, a.loading),
		"",
		sectionLabelStyle.Render(m.QueryLabel),
		a.queryInput.View(),
		renderButton(similarLabel, a.focus == fieldSimilar, a.loading),
	}

	if a.errMsg != "" {
		parts = append(parts, "", errorBannerStyle.Width(width).Render("! "+a.errMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
