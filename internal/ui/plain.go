package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/stats"
)

// plainPresenter reports fetch progress to errW and prints the chart to w
// once every fetch has finished.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	format  chart.Formatter
	width   int
	session *Session

	values []int64
	label  chart.Label
}

// Render implements chart.Widget.
func (p *plainPresenter) Render(values []int64) { p.values = values }

// SetLabel implements chart.Widget.
func (p *plainPresenter) SetLabel(l chart.Label) { p.label = l }

func (p *plainPresenter) Run(events <-chan event.Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	if !p.session.Ready() {
		return ErrNoNationalData
	}
	p.printChart()
	return nil
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.FetchStarted:
		fmt.Fprintf(p.errW, "fetching %s data...\n", ev.Kind)
	case event.FetchRetry:
		fmt.Fprintf(p.errW, "retrying %s (attempt %d)\n", ev.Kind, ev.Attempt)
	case event.FetchCompleted:
		fmt.Fprintf(p.errW, "%s: %s records  %s\n",
			ev.Kind, p.format.Number(int64(len(ev.Records))), FormatBytes(ev.Bytes))
	case event.FetchFailed:
		fmt.Fprintf(p.errW, "%s: %v\n", ev.Kind, ev.Error)
	}

	if err := p.session.Handle(ev); err != nil {
		slog.Error("apply dataset", "dataset", ev.Kind.String(), "error", err)
	}
}

func (p *plainPresenter) printChart() {
	sel, err := p.session.Chart.Selection()
	if err != nil {
		return
	}

	width := max(p.width-4, 10)
	fmt.Fprintf(p.w, "%s  %s  %s\n",
		RegionName(sel.State), MetricTitle(sel.Metric), sel.TimeScale)
	fmt.Fprintf(p.w, "  %s\n", Sparkline(p.values, width))
	col := SparkColumn(sel.Index, len(p.values), width)
	fmt.Fprintf(p.w, "  %s^\n", strings.Repeat(" ", col))
	fmt.Fprintf(p.w, "%s  %s\n", p.label.Number, p.label.Date)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot(), p.format)
}
