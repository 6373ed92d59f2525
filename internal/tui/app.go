package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/merdandt/city-snaps/internal/browser"
	"github.com/merdandt/city-snaps/internal/calendar"
	"github.com/merdandt/city-snaps/internal/config"
	"github.com/merdandt/city-snaps/internal/events"
	"github.com/merdandt/city-snaps/internal/history"
	"github.com/merdandt/city-snaps/internal/normalize"
)

type focusPane int

const (
	focusList focusPane = iota
	focusCard
)

type mode int

const (
	modeHome mode = iota
	modeResults
	modeCalendar
	modeDays
	modeCategory
	modeCustom
	modeHistory
	modeHelp
)

// loadState is the explicit lifecycle of the current query. State moves
// NotLoaded -> Loading -> Loaded on discrete messages; nothing ambient.
type loadState int

const (
	stateNotLoaded loadState = iota
	stateLoading
	stateLoaded
)

type App struct {
	cfg    *config.Config
	client *events.Client // nil when no API key is configured
	log    *history.Log   // nil when the history db could not be opened

	mode  mode
	state loadState

	// Current query result, valid when state == stateLoaded
	outcome outcome
	entries []calendar.Entry

	cursor     int
	cardScroll int
	calScroll  int
	rawScroll  int
	focus      focusPane

	// Mode-picker state
	days      int
	catCursor int

	histRecords []history.Record
	histCursor  int

	searchInput textinput.Model
	spinner     spinner.Model

	width  int
	height int

	loadingLabel string
	helpReturn   mode

	// Last dispatched query, for manual rerun
	lastLabel    string
	lastRun      func(context.Context) (string, error)
	lastSearched bool

	err error
}

func NewApp(cfg *config.Config, client *events.Client, log *history.Log) *App {
	ti := textinput.New()
	ti.Placeholder = "Search events..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:         cfg,
		client:      client,
		log:         log,
		mode:        modeHome,
		state:       stateNotLoaded,
		days:        cfg.DefaultDays(),
		searchInput: ti,
		spinner:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	// Auto-load today's events on startup when a key is configured, the
	// same first-visit behavior the original explorer had.
	if a.client != nil {
		return a.dispatch("today's events", a.client.Today, false)
	}
	return nil
}

// dispatch fires one query. It flips the state machine to Loading and
// returns the fetch plus the spinner tick.
func (a *App) dispatch(label string, run func(context.Context) (string, error), searched bool) tea.Cmd {
	a.state = stateLoading
	a.mode = modeResults
	a.loadingLabel = label
	a.lastLabel = label
	a.lastRun = run
	a.lastSearched = searched
	return tea.Batch(a.fetchCmd(label, run, searched), a.spinner.Tick)
}

func (a *App) fetchCmd(label string, run func(context.Context) (string, error), searched bool) tea.Cmd {
	log := a.log
	return func() tea.Msg {
		raw, err := run(context.Background())
		o := outcome{query: label, raw: raw, searched: searched}
		if err != nil {
			o.err = err
			return resultMsg{outcome: o}
		}

		res, rerr := normalize.Normalize(raw)
		if rerr != nil {
			o.err = rerr
		} else {
			o.result = res
		}
		appendHistory(log, o)
		return resultMsg{outcome: o}
	}
}

// appendHistory records queries that produced a response. Transport
// failures never reach here; there is nothing to inspect later.
func appendHistory(log *history.Log, o outcome) {
	if log == nil {
		return
	}
	rec := history.Record{
		Query:      o.query,
		Raw:        o.raw,
		OK:         o.err == nil,
		EventCount: len(o.result.Events),
	}
	if rerr, ok := o.err.(*normalize.RecoveryError); ok {
		rec.Reason = rerr.Reason
	}
	log.Append(rec)
}

func (a *App) loadHistoryCmd() tea.Cmd {
	log := a.log
	return func() tea.Msg {
		if log == nil {
			return errMsg{err: fmt.Errorf("query history is unavailable")}
		}
		records, err := log.Recent(50)
		if err != nil {
			return errMsg{err: err}
		}
		return historyLoadedMsg{records: records}
	}
}

func openSourceCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case resultMsg:
		a.state = stateLoaded
		a.outcome = msg.outcome
		a.entries = calendar.Project(msg.outcome.result.Events, time.Now())
		a.cursor = 0
		a.cardScroll = 0
		a.calScroll = 0
		a.rawScroll = 0
		a.focus = focusList
		a.mode = modeResults
		return a, nil

	case historyLoadedMsg:
		a.histRecords = msg.records
		a.histCursor = 0
		a.mode = modeHistory
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.state == stateLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeDays:
		return a.handleDaysKey(msg)
	case modeCategory:
		return a.handleCategoryKey(msg)
	case modeCustom:
		return a.handleCustomKey(msg)
	case modeResults:
		return a.handleResultsKey(msg)
	case modeCalendar:
		return a.handleCalendarKey(msg)
	case modeHistory:
		return a.handleHistoryKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = a.helpReturn
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "y":
		return a, a.loadHistoryCmd()
	case "?":
		a.helpReturn = modeHome
		a.mode = modeHelp
		return a, nil
	}

	if a.client == nil {
		// Without a credential no search mode is reachable.
		return a, nil
	}

	switch msg.String() {
	case "t":
		return a, a.dispatch("today's events", a.client.Today, true)
	case "u":
		a.mode = modeDays
		return a, nil
	case "c":
		a.mode = modeCategory
		a.catCursor = 0
		return a, nil
	case "s":
		a.mode = modeCustom
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleDaysKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		return a, nil
	case "left", "h", "down", "j":
		if a.days > 1 {
			a.days--
		}
		return a, nil
	case "right", "l", "up", "k":
		if a.days < 30 {
			a.days++
		}
		return a, nil
	case "enter":
		days := a.days
		client := a.client
		return a, a.dispatch(
			fmt.Sprintf("upcoming %d days", days),
			func(ctx context.Context) (string, error) { return client.Upcoming(ctx, days) },
			true,
		)
	}
	return a, nil
}

func (a *App) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		return a, nil
	case "down", "j":
		if a.catCursor < len(a.cfg.Categories)-1 {
			a.catCursor++
		}
		return a, nil
	case "up", "k":
		if a.catCursor > 0 {
			a.catCursor--
		}
		return a, nil
	case "enter":
		if len(a.cfg.Categories) == 0 {
			return a, nil
		}
		cat := a.cfg.Categories[a.catCursor]
		client := a.client
		return a, a.dispatch(
			"category: "+strings.ToLower(cat),
			func(ctx context.Context) (string, error) { return client.ByCategory(ctx, cat) },
			true,
		)
	}
	return a, nil
}

func (a *App) handleCustomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		a.searchInput.Blur()
		return a, nil
	case "enter":
		query := strings.TrimSpace(a.searchInput.Value())
		if query == "" {
			// A custom search requires a query; stay in the input.
			return a, nil
		}
		a.searchInput.Blur()
		client := a.client
		return a, a.dispatch(
			query,
			func(ctx context.Context) (string, error) { return client.Fetch(ctx, query) },
			true,
		)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state != stateLoaded {
		// Still loading; only navigation away is allowed.
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "h":
			a.mode = modeHome
			return a, nil
		}
		return a, nil
	}

	// Failure display: reason plus raw response
	if a.outcome.err != nil {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "h", "esc":
			a.mode = modeHome
			return a, nil
		case "j", "down":
			a.rawScroll++
			return a, nil
		case "k", "up":
			if a.rawScroll > 0 {
				a.rawScroll--
			}
			return a, nil
		case "r":
			if a.lastRun != nil {
				return a, a.dispatch(a.lastLabel, a.lastRun, a.lastSearched)
			}
			return a, nil
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "h", "esc":
		a.mode = modeHome
		return a, nil
	case "?":
		a.helpReturn = modeResults
		a.mode = modeHelp
		return a, nil
	case "v":
		a.mode = modeCalendar
		a.calScroll = 0
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusCard
		} else {
			a.focus = focusList
		}
		return a, nil
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.outcome.result.Events)-1 {
			a.cursor++
			a.cardScroll = 0
		} else if a.focus == focusCard {
			a.cardScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.cardScroll = 0
		} else if a.focus == focusCard && a.cardScroll > 0 {
			a.cardScroll--
		}
		return a, nil
	case "o", "enter":
		evs := a.outcome.result.Events
		if len(evs) > 0 && a.cursor < len(evs) && browser.ValidSource(evs[a.cursor].Source) {
			return a, openSourceCmd(evs[a.cursor].Source)
		}
		return a, nil
	case "r":
		if a.lastRun != nil {
			return a, a.dispatch(a.lastLabel, a.lastRun, a.lastSearched)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "v", "esc":
		a.mode = modeResults
		return a, nil
	case "h":
		a.mode = modeHome
		return a, nil
	case "j", "down":
		if a.calScroll < len(a.entries)-1 {
			a.calScroll++
		}
		return a, nil
	case "k", "up":
		if a.calScroll > 0 {
			a.calScroll--
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "h":
		a.mode = modeHome
		return a, nil
	case "j", "down":
		if a.histCursor < len(a.histRecords)-1 {
			a.histCursor++
		}
		return a, nil
	case "k", "up":
		if a.histCursor > 0 {
			a.histCursor--
		}
		return a, nil
	case "enter":
		if len(a.histRecords) == 0 || a.histCursor >= len(a.histRecords) {
			return a, nil
		}
		// Replay the stored raw response through normalization; no
		// network call is involved.
		rec := a.histRecords[a.histCursor]
		o := outcome{query: rec.Query, raw: rec.Raw, searched: true}
		res, rerr := normalize.Normalize(rec.Raw)
		if rerr != nil {
			o.err = rerr
		} else {
			o.result = res
		}
		return a, func() tea.Msg { return resultMsg{outcome: o} }
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  citysnaps")
	}

	switch a.mode {
	case modeHome:
		return a.withStatusBar(
			renderHomeScreen(a.width, a.height, a.cfg.Place, a.client != nil),
			"", "t today  u upcoming  c category  s search  y history  q quit")
	case modeDays:
		return a.withStatusBar(a.renderDaysPicker(), "", "←/→ adjust  enter search  esc back")
	case modeCategory:
		return a.withStatusBar(a.renderCategoryPicker(), "", "j/k move  enter search  esc back")
	case modeCustom:
		return a.withStatusBar(a.renderCustomInput(), "", "enter search  esc back")
	case modeHistory:
		return a.withStatusBar(a.renderHistory(), "", "j/k move  enter view  esc back  q quit")
	case modeHelp:
		return a.withStatusBar(a.renderHelp(), "", "? close  q quit")
	case modeCalendar:
		left := fmt.Sprintf(" %d dated of %d events", len(a.entries), len(a.outcome.result.Events))
		return a.withStatusBar(a.renderCalendarScreen(), left, "j/k scroll  v cards  h home  q quit")
	}

	// modeResults
	if a.state == stateLoading {
		text := a.spinner.View() + " " + emptyStyle.Render("Fetching "+a.loadingLabel+"...")
		return a.withStatusBar(centered(text, a.width, a.height), "", "h home  q quit")
	}
	if a.state == stateNotLoaded {
		return a.withStatusBar(centered(emptyStyle.Render("Nothing loaded yet"), a.width, a.height), "", "h home  q quit")
	}

	if a.outcome.err != nil {
		return a.withStatusBar(a.renderFailure(), " "+a.outcome.query, "j/k scroll  r retry  h home  q quit")
	}

	left := fmt.Sprintf(" %d events · %s", len(a.outcome.result.Events), a.outcome.query)
	return a.withStatusBar(a.renderResults(), left, "j/k move  tab focus  o open  v calendar  r rerun  h home  q quit")
}

func (a *App) withStatusBar(content, left, hints string) string {
	if a.err != nil {
		left = " " + errorTitleStyle.Render(a.err.Error())
	}
	bar := renderStatusBar(left, hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) header() string {
	left := headerStyle.Render("citysnaps")
	right := headerDateStyle.Render(a.cfg.Place + " · " + time.Now().Format("Jan 2"))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (a *App) renderResults() string {
	evs := a.outcome.result.Events
	news := a.outcome.result.News

	if len(evs) == 0 {
		var notice string
		if news != nil {
			notice = newsTitleStyle.Render("Local News Update") + "\n\n" +
				newsBodyStyle.Width(a.width-8).Render(wrapText(sanitizeText(news.Content), a.width-8))
			notice = lipgloss.NewStyle().Padding(1, 4).Render(notice)
		} else if a.outcome.searched {
			notice = centered(emptyStyle.Render("No events found matching your search."), a.width, a.height-2)
		} else {
			notice = centered(emptyStyle.Render("No events found for today."), a.width, a.height-2)
		}
		return lipgloss.JoinVertical(lipgloss.Left, a.header(), notice)
	}

	headerHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.35)
	cardWidth := a.width - listWidth - 1 // gap

	innerListW := listWidth - 4
	listContent := renderEventList(evs, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	var selected *normalize.Event
	if a.cursor < len(evs) {
		selected = &evs[a.cursor]
	}
	innerCardW := cardWidth - 4
	cardContent := renderEventCard(selected, news, innerCardW, contentHeight, a.cardScroll)

	var cardPane string
	if a.focus == focusCard {
		cardPane = cardPaneActiveStyle.Width(cardWidth - 2).Height(contentHeight).Render(cardContent)
	} else {
		cardPane = cardPaneStyle.Width(cardWidth - 2).Height(contentHeight).Render(cardContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, cardPane)

	return lipgloss.JoinVertical(lipgloss.Left, a.header(), content)
}

func (a *App) renderCalendarScreen() string {
	table := renderCalendar(a.entries, a.width-4, a.height-4, a.calScroll)
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), "",
		lipgloss.NewStyle().PaddingLeft(2).Render(table))
}

// renderFailure shows the failure reason and the raw response verbatim so
// the user can see what the model actually sent.
func (a *App) renderFailure() string {
	reason := errorTitleStyle.Render("Error: " + a.outcome.err.Error())

	var rawSection string
	if a.outcome.raw != "" {
		lines := strings.Split(a.outcome.raw, "\n")
		if a.rawScroll > len(lines)-1 {
			a.rawScroll = len(lines) - 1
		}
		visible := a.height - 6
		if visible < 1 {
			visible = 1
		}
		end := a.rawScroll + visible
		if end > len(lines) {
			end = len(lines)
		}
		rawSection = errorRawStyle.Render(strings.Join(lines[a.rawScroll:end], "\n"))
	}

	body := lipgloss.NewStyle().Padding(1, 2).Render(
		reason + "\n\n" + helpDimStyle.Render("Raw response:") + "\n" + rawSection)
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), body)
}

func (a *App) renderDaysPicker() string {
	title := cardTitleStyle.Render("Upcoming events")
	bar := fmt.Sprintf("Look ahead: %s days", pickerSelectedStyle.Render(fmt.Sprintf("%d", a.days)))
	hint := helpDimStyle.Render("(1-30)")
	content := title + "\n\n" + bar + " " + hint
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderCategoryPicker() string {
	title := cardTitleStyle.Render("Search by category")
	var lines []string
	lines = append(lines, title, "")
	for i, c := range a.cfg.Categories {
		if i == a.catCursor {
			lines = append(lines, pickerSelectedStyle.Render("> "+c))
		} else {
			lines = append(lines, pickerStyle.Render("  "+c))
		}
	}
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

func (a *App) renderCustomInput() string {
	title := cardTitleStyle.Render("Custom search")
	content := title + "\n\n" + a.searchInput.View()
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderHistory() string {
	if len(a.histRecords) == 0 {
		return centered(emptyStyle.Render("No queries recorded yet"), a.width, a.height-1)
	}

	var lines []string
	lines = append(lines, calHeaderStyle.Render("  Query history"), "")
	for i, r := range a.histRecords {
		status := itemDateStyle.Render(fmt.Sprintf("%d events", r.EventCount))
		if !r.OK {
			status = errorTitleStyle.Render(r.Reason)
		}
		label := fmt.Sprintf("%s  %s · %s",
			truncateStr(r.Query, a.width/2), status, helpDimStyle.Render(relativeTime(r.CreatedAt)))
		if i == a.histCursor {
			lines = append(lines, pickerSelectedStyle.Render("> ")+label)
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), "",
		lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n")))
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("citysnaps")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Home") + "\n" +
		"  t             Today's events\n" +
		"  u             Upcoming events (pick 1-30 days)\n" +
		"  c             Search by category\n" +
		"  s             Custom search\n" +
		"  y             Query history\n\n" +
		dim.Render("Results") + "\n" +
		"  j/k, ↑/↓     Move through events / scroll card\n" +
		"  tab           Switch focus between list and card\n" +
		"  o, enter      Open the event's source link\n" +
		"  v             Toggle calendar view\n" +
		"  r             Run the last query again\n\n" +
		dim.Render("General") + "\n" +
		"  h, esc        Back / home\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(cfg *config.Config, client *events.Client, log *history.Log) error {
	app := NewApp(cfg, client, log)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
