package ui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/stats"
)

// quietPresenter prints only the final label, tab separated, for scripts.
type quietPresenter struct {
	w       io.Writer
	stats   *stats.Collector
	session *Session
	label   chart.Label
}

func (p *quietPresenter) Render([]int64)         {}
func (p *quietPresenter) SetLabel(l chart.Label) { p.label = l }

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		if err := p.session.Handle(ev); err != nil {
			slog.Error("apply dataset", "dataset", ev.Kind.String(), "error", err)
		}
	}
	if !p.session.Ready() {
		return ErrNoNationalData
	}
	fmt.Fprintf(p.w, "%s\t%s\n", p.label.Number, p.label.Date)
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
