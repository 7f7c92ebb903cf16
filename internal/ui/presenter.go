package ui

import (
	"errors"
	"io"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/stats"
)

// ErrNoNationalData is returned by Run when the event channel closes before
// any national data arrived.
var ErrNoNationalData = errors.New("national data unavailable")

// Presenter consumes fetch events and displays the chart.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Stats     *stats.Collector
	Formatter chart.Formatter
	Prefs     Preferences
	Width     int
	Quiet     bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory returns the interface
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		q := &quietPresenter{w: cfg.Writer, stats: cfg.Stats}
		q.session = NewSession(chart.NewController(q, cfg.Formatter), cfg.Prefs)
		return q
	}
	p := &plainPresenter{
		w:      cfg.Writer,
		errW:   cfg.ErrWriter,
		stats:  cfg.Stats,
		format: cfg.Formatter,
		width:  cfg.Width,
	}
	p.session = NewSession(chart.NewController(p, cfg.Formatter), cfg.Prefs)
	return p
}
