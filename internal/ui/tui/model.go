package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
	"github.com/bamsammich/covidspark/internal/stats"
	"github.com/bamsammich/covidspark/internal/ui"
)

type viewMode int

const (
	viewChart viewMode = iota
	viewStates
)

// Bubble Tea messages.
type fetchEventMsg event.Event
type channelDoneMsg struct{}

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return fetchEventMsg(ev)
	}
}

type fetchState int

const (
	fetchIdle fetchState = iota
	fetchLoading
	fetchReady
	fetchFailed
)

// Model is the root Bubble Tea model. Update is the only caller of the
// session and its controller.
type Model struct {
	events  <-chan event.Event
	stats   *stats.Collector
	session *ui.Session
	chart   *chartView
	format  chart.Formatter
	refresh func()

	mode      viewMode
	states    statesView
	fetch     map[event.Kind]fetchState
	width     int
	height    int
	statusMsg string // transient notification
	quitting  bool
}

// NewModel creates a new TUI model. refresh, if non-nil, is called to
// re-fetch both datasets.
func NewModel(
	events <-chan event.Event,
	collector *stats.Collector,
	f chart.Formatter,
	prefs ui.Preferences,
	refresh func(),
) Model {
	cv := &chartView{}
	return Model{
		events:  events,
		stats:   collector,
		session: ui.NewSession(chart.NewController(cv, f), prefs),
		chart:   cv,
		format:  f,
		refresh: refresh,
		fetch: map[event.Kind]fetchState{
			event.National: fetchLoading,
			event.States:   fetchLoading,
		},
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return readNextEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchEventMsg:
		return m.handleFetchEvent(event.Event(msg))

	case channelDoneMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleFetchEvent(ev event.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case event.FetchStarted, event.FetchRetry:
		m.fetch[ev.Kind] = fetchLoading
	case event.FetchCompleted:
		m.fetch[ev.Kind] = fetchReady
	case event.FetchFailed:
		// Prior data, if any, stays on screen.
		if m.fetch[ev.Kind] != fetchReady {
			m.fetch[ev.Kind] = fetchFailed
		}
		m.statusMsg = fmt.Sprintf("%s data unavailable", ev.Kind)
	}

	if err := m.session.Handle(ev); err != nil {
		m.statusMsg = err.Error()
	}
	if ev.Type == event.FetchCompleted && ev.Kind == event.States {
		m.states.setCodes(m.session.Chart.StateCodes())
	}
	return m, readNextEvent(m.events)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.session.Chart

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "p":
		return m.apply(c.SelectMetric(series.Positive))
	case "n":
		return m.apply(c.SelectMetric(series.Negative))
	case "d":
		return m.apply(c.SelectMetric(series.Death))

	case "w":
		return m.apply(c.SelectTimeScale(series.Week))
	case "m":
		return m.apply(c.SelectTimeScale(series.Month))
	case "a":
		return m.apply(c.SelectTimeScale(series.Max))

	case "left", "h":
		return m.scrubBy(-1)
	case "right", "l":
		return m.scrubBy(1)
	case "home":
		return m.scrubTo(func(chart.Selection) int { return 0 })
	case "end":
		return m.scrubTo(func(s chart.Selection) int { return len(s.Window) - 1 })

	case "u":
		m.mode = viewChart
		return m.apply(c.SelectState(""))

	case "s", "tab":
		if m.mode == viewStates {
			m.mode = viewChart
			return m, nil
		}
		if !c.StatesAvailable() {
			m.statusMsg = "per-state data not available"
			return m, nil
		}
		m.mode = viewStates
		m.statusMsg = ""
		return m, nil

	case "enter":
		if m.mode != viewStates {
			return m, nil
		}
		m.mode = viewChart
		return m.apply(c.SelectState(m.states.selected()))

	case "esc":
		m.mode = viewChart
		return m, nil

	case "j", "down":
		if m.mode == viewStates {
			m.states.moveDown()
		}
		return m, nil
	case "k", "up":
		if m.mode == viewStates {
			m.states.moveUp()
		}
		return m, nil
	case "g":
		if m.mode == viewStates {
			m.states.moveToTop()
		}
		return m, nil
	case "G":
		if m.mode == viewStates {
			m.states.moveToBottom()
		}
		return m, nil

	case "r":
		if m.refresh == nil {
			m.statusMsg = "refresh: not available"
			return m, nil
		}
		m.refresh()
		m.statusMsg = "refreshing..."
		return m, nil
	}

	return m, nil
}

// apply reports the outcome of a selection call on the status line.
func (m Model) apply(err error) (tea.Model, tea.Cmd) {
	switch {
	case err == nil:
		m.statusMsg = ""
	case errors.Is(err, chart.ErrDataNotReady):
		m.statusMsg = "waiting for data"
	default:
		m.statusMsg = err.Error()
	}
	return m, nil
}

func (m Model) scrubBy(delta int) (tea.Model, tea.Cmd) {
	return m.scrubTo(func(s chart.Selection) int { return s.Index + delta })
}

func (m Model) scrubTo(target func(chart.Selection) int) (tea.Model, tea.Cmd) {
	sel, err := m.session.Chart.Selection()
	if err != nil {
		return m.apply(err)
	}
	return m.apply(m.session.Chart.Scrub(target(sel)))
}

// latestValue renders the most recent value of the current metric for a
// state, as shown in the states list.
func (m Model) latestValue(code string) string {
	s, ok := m.session.Store.State(code)
	if !ok || len(s) == 0 {
		return "–"
	}
	metric := series.Positive
	if sel, err := m.session.Chart.Selection(); err == nil {
		metric = sel.Metric
	}
	return m.format.Number(metric.ValueOf(s[len(s)-1]))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header (1 line).
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	// Content area.
	contentHeight := m.height - 5 // header (2) + status (1) + footer (2)
	if contentHeight < 3 {
		contentHeight = 3
	}

	sel, err := m.session.Chart.Selection()
	switch {
	case err != nil:
		b.WriteString("  " + styleLoading.Render("waiting for national data..."))
		b.WriteByte('\n')
	case m.mode == viewStates:
		b.WriteString(m.states.view(contentHeight-1, sel.State, m.latestValue))
	default:
		b.WriteString(m.chart.view(m.width, sel, m.format))
	}

	// Status message.
	b.WriteByte('\n')
	if m.statusMsg != "" {
		b.WriteString(styleStatus.Render("  " + m.statusMsg))
	}
	b.WriteByte('\n')

	// Footer.
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	snap := m.stats.Snapshot()
	header := fmt.Sprintf("  %s  national %s  states %s  %s",
		styleHeaderLabel.Render("covidspark"),
		renderFetchState(m.fetch[event.National]),
		renderFetchState(m.fetch[event.States]),
		styleKeybindLabel.Render(ui.FormatBytes(snap.Bytes)),
	)
	return styleHeader.Render(header)
}

func renderFetchState(s fetchState) string {
	switch s {
	case fetchLoading:
		return styleLoading.Render("…")
	case fetchReady:
		return styleReady.Render("✓")
	case fetchFailed:
		return styleFailed.Render("✗")
	default:
		return styleDivider.Render("-")
	}
}

func (m Model) renderFooter() string {
	type keybind struct {
		key   string
		label string
	}

	var binds []keybind
	if m.mode == viewStates {
		binds = []keybind{
			{"j/k", "move"},
			{"enter", "select"},
			{"u", "national"},
			{"esc", "back"},
			{"q", "quit"},
		}
	} else {
		binds = []keybind{
			{"p/n/d", "metric"},
			{"w/m/a", "window"},
			{"←/→", "scrub"},
			{"s", "states"},
			{"r", "refresh"},
			{"q", "quit"},
		}
	}

	var parts []string
	for _, kb := range binds {
		parts = append(parts,
			styleKeybindKey.Render(kb.key)+" "+styleKeybindLabel.Render(kb.label))
	}

	return "  " + strings.Join(parts, "   ")
}
