package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/browser"
	"github.com/saraHmercha/topsearch/internal/config"
	"github.com/saraHmercha/topsearch/internal/i18n"
	"github.com/saraHmercha/topsearch/internal/search"
)

type App struct {
	svc         *search.Service
	msgs        i18n.Messages
	collections []config.Collection
	apiURL      string
	preselect   string
	open        func(string) error

	width  int
	height int

	// Form state
	collection  string
	radioCursor int
	yearInput   textinput.Model
	startInput  textinput.Model
	endInput    textinput.Model
	queryInput  textinput.Model
	focus       field
	loading     bool
	errMsg      string

	// Results
	articles      []api.Article
	cursor        int
	previewScroll int

	// generation numbers every issued request; only the latest may
	// update the results.
	generation int

	spinner  spinner.Model
	showHelp bool
	err      error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Service     *search.Service
	Collections []config.Collection
	APIURL      string
	// Collection, when set, is selected on startup as if the user had
	// picked it.
	Collection string
}

func NewApp(opts RunOpts) *App {
	msgs := opts.Service.Messages()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		svc:         opts.Service,
		msgs:        msgs,
		collections: opts.Collections,
		apiURL:      opts.APIURL,
		preselect:   opts.Collection,
		open:        browser.Open,
		yearInput:   newYearInput(),
		startInput:  newYearInput(),
		endInput:    newYearInput(),
		queryInput:  newQueryInput(msgs.QueryPlaceholder),
		focus:       fieldCollections,
		spinner:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	if a.preselect == "" {
		return nil
	}
	for i, c := range a.collections {
		if c.Name == a.preselect {
			a.radioCursor = i
			return a.selectCollection(i)
		}
	}
	return nil
}

// selectCollection resets results and errors, then shows the unfiltered
// collection when no year filter is set. That listing does not drive the
// loading flag.
func (a *App) selectCollection(i int) tea.Cmd {
	if i < 0 || i >= len(a.collections) {
		return nil
	}
	a.collection = a.collections[i].Name
	a.articles = nil
	a.cursor = 0
	a.previewScroll = 0
	a.errMsg = ""

	criteria := a.criteria()
	if !criteria.Empty() {
		return nil
	}
	return a.criteriaCmd(criteria, false)
}

// criteriaCmd captures the current query state into the closure to avoid races.
func (a *App) criteriaCmd(criteria api.Criteria, tracked bool) tea.Cmd {
	a.generation++
	gen := a.generation
	svc := a.svc
	collection := a.collection
	return func() tea.Msg {
		out := svc.ByCriteria(context.Background(), collection, criteria)
		return searchDoneMsg{generation: gen, tracked: tracked, outcome: out}
	}
}

func (a *App) similarityCmd(query string) tea.Cmd {
	a.generation++
	gen := a.generation
	svc := a.svc
	collection := a.collection
	return func() tea.Msg {
		out := svc.BySimilarity(context.Background(), collection, query)
		return searchDoneMsg{generation: gen, tracked: true, outcome: out}
	}
}

func (a *App) searchByCriteria() tea.Cmd {
	if a.loading {
		return nil
	}
	if msg := a.svc.CheckCriteria(a.collection); msg != "" {
		a.showLocalError(msg)
		return nil
	}
	a.loading = true
	a.errMsg = ""
	return tea.Batch(a.criteriaCmd(a.criteria(), true), a.spinner.Tick)
}

func (a *App) searchBySimilarity() tea.Cmd {
	if a.loading {
		return nil
	}
	query := a.queryInput.Value()
	if msg := a.svc.CheckSimilarity(a.collection, query); msg != "" {
		a.showLocalError(msg)
		return nil
	}
	a.loading = true
	a.errMsg = ""
	return tea.Batch(a.similarityCmd(query), a.spinner.Tick)
}

func (a *App) showLocalError(msg string) {
	a.errMsg = msg
	a.articles = nil
	a.cursor = 0
	a.previewScroll = 0
}

func openPDFCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openFailedMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.queryInput.Width = max(10, a.formWidth()-8)
		return a, nil

	case tea.KeyMsg:
		// Clear sticky browser error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case searchDoneMsg:
		if msg.tracked {
			a.loading = false
		}
		if msg.generation != a.generation {
			return a, nil // superseded by a newer request
		}
		a.cursor = 0
		a.previewScroll = 0
		if msg.outcome.Found() {
			a.articles = msg.outcome.Articles
			a.errMsg = ""
		} else {
			a.articles = nil
			a.errMsg = msg.outcome.Message
		}
		return a, nil

	case openFailedMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blink and other input-internal messages
	if in := a.input(a.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) setFocus(f field) tea.Cmd {
	for _, in := range []*textinput.Model{&a.yearInput, &a.startInput, &a.endInput, &a.queryInput} {
		in.Blur()
	}
	a.focus = f
	if in := a.input(f); in != nil {
		return in.Focus()
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		a.showHelp = false
		return a, a.setFocus(a.focus.next())
	case "shift+tab":
		a.showHelp = false
		return a, a.setFocus(a.focus.prev())
	}

	if a.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.showHelp = false
		}
		return a, nil
	}

	if a.focus.isInput() {
		return a.handleInputKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	}

	switch a.focus {
	case fieldCollections:
		return a.handleCollectionsKey(msg)
	case fieldSearch:
		if isPress(msg) {
			return a, a.searchByCriteria()
		}
	case fieldSimilar:
		if isPress(msg) {
			return a, a.searchBySimilarity()
		}
	case fieldResults:
		return a.handleResultsKey(msg)
	}
	return a, nil
}

func isPress(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == "enter" || s == " " || s == "space"
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a.focus == fieldQuery {
			return a, a.searchBySimilarity()
		}
		return a, a.searchByCriteria()
	case "esc":
		return a, a.setFocus(fieldCollections)
	}

	if a.focus.isYear() && len(msg.Runes) > 0 && !digitsOnly(msg.Runes) {
		return a, nil
	}

	in := a.input(a.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return a, cmd
}

func (a *App) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.radioCursor < len(a.collections)-1 {
			a.radioCursor++
		}
		return a, nil
	case "k", "up":
		if a.radioCursor > 0 {
			a.radioCursor--
		}
		return a, nil
	case " ", "space", "enter":
		return a, a.selectCollection(a.radioCursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.collections) {
			a.radioCursor = idx
			return a, a.selectCollection(idx)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		}
		return a, nil
	case "pgdown", "J":
		a.previewScroll++
		return a, nil
	case "pgup", "K":
		if a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(a.articles) && a.articles[a.cursor].PDFLink != "" {
			return a, openPDFCmd(a.open, a.articles[a.cursor].PDFLink)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) formWidth() int {
	return max(34, int(float64(a.width)*0.38))
}

func (a *App) selectedLabel() string {
	for _, c := range a.collections {
		if c.Name == a.collection {
			return c.DisplayName()
		}
	}
	return ""
}

func (a *App) hints() string {
	switch {
	case a.loading:
		return a.msgs.Loading
	case a.focus.isInput():
		return "enter search  esc back  tab next"
	case a.focus == fieldCollections:
		return "j/k move  space select  tab next  ? help  q quit"
	case a.focus == fieldResults:
		return "j/k move  o open pdf  tab next  q quit"
	default:
		return "enter press  tab next  ? help  q quit"
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  topsearch")
	}

	if a.showHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - statusHeight - 2 // borders
	if contentHeight < 6 {
		contentHeight = 6
	}

	formWidth := a.formWidth()
	rightWidth := a.width - formWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("topsearch")
	headerRight := headerHostStyle.Render(a.apiURL)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Form pane
	formStyle := paneStyle
	if a.focus != fieldResults {
		formStyle = paneActiveStyle
	}
	formPane := formStyle.Width(formWidth - 2).Height(contentHeight).Render(a.renderForm(formWidth - 4))

	// Results: list on top, preview below
	listHeight := max(3, (contentHeight-2)/2)
	previewHeight := max(3, contentHeight-listHeight-2)
	innerW := rightWidth - 4

	var listContent string
	if a.collection == "" && len(a.articles) == 0 && a.errMsg == "" {
		listContent = renderWelcome(innerW, listHeight, a.msgs.SelectCollection)
	} else {
		listContent = renderList(a.articles, a.cursor, listHeight, innerW, a.msgs.NoResults)
	}

	var selected *api.Article
	if a.cursor < len(a.articles) {
		selected = &a.articles[a.cursor]
	}
	previewContent := renderPreview(selected, a.msgs, innerW, previewHeight, a.previewScroll)

	resultStyle := paneStyle
	if a.focus == fieldResults {
		resultStyle = paneActiveStyle
	}
	listPane := resultStyle.Width(rightWidth - 2).Height(listHeight).Render(listContent)
	previewPane := paneStyle.Width(rightWidth - 2).Height(previewHeight).Render(previewContent)
	right := lipgloss.JoinVertical(lipgloss.Left, listPane, previewPane)

	content := lipgloss.JoinHorizontal(lipgloss.Top, formPane, " ", right)

	status := renderStatusBar(len(a.articles), a.selectedLabel(), a.hints(), a.width)
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("topsearch")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Form") + "\n" +
		"  tab, shift+tab  Move between fields\n" +
		"  j/k, ↑/↓        Move through collections\n" +
		"  space, 1-9      Select collection\n" +
		"  enter           Search (year fields) or find similar (query)\n" +
		"  esc             Leave a text field\n\n" +
		dim.Render("Results") + "\n" +
		"  j/k, ↑/↓        Navigate articles\n" +
		"  pgup/pgdown     Scroll preview\n" +
		"  o, enter        Open PDF in browser\n\n" +
		dim.Render("General") + "\n" +
		"  ?               Toggle this help\n" +
		"  q, ctrl+c       Quit"

	card := helpCardStyle.Render(strings.TrimRight(help, "\n"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
