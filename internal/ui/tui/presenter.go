package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/config"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/stats"
	"github.com/bamsammich/covidspark/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Stats     *stats.Collector
	Formatter chart.Formatter
	Prefs     ui.Preferences
	Theme     config.ThemeConfig
	// Refresh re-fetches both datasets; events arrive on the same channel.
	Refresh func()
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg Config
}

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (p *Presenter) Run(events <-chan event.Event) error {
	m := NewModel(events, p.cfg.Stats, p.cfg.Formatter, p.cfg.Prefs, p.cfg.Refresh)
	prog := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	_, err := prog.Run()
	return err
}

// Summary returns the final completion summary line.
func (p *Presenter) Summary() string {
	return ui.CompletionSummary(p.cfg.Stats.Snapshot(), p.cfg.Formatter)
}
