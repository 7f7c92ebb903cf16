package tui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/series"
	"github.com/bamsammich/covidspark/internal/ui"
)

// chartView is the chart.Widget the controller draws into. It is shared by
// pointer between copies of the Bubble Tea model.
type chartView struct {
	values []int64
	label  chart.Label
}

func (c *chartView) Render(values []int64)  { c.values = values }
func (c *chartView) SetLabel(l chart.Label) { c.label = l }

func (c *chartView) view(width int, sel chart.Selection, f chart.Formatter) string {
	if width < 20 {
		width = 20
	}
	sparkWidth := width - 4

	var b strings.Builder

	// Selection line.
	b.WriteString("  " + renderChoices(
		[]string{"positive", "negative", "death"},
		int(sel.Metric),
	))
	b.WriteString("    ")
	b.WriteString(renderChoices(
		[]string{"max", "week", "month"},
		int(sel.TimeScale),
	))
	b.WriteString("    " + styleHeaderLabel.Render(ui.RegionName(sel.State)))
	b.WriteString("\n\n")

	// Big number and date for the highlighted record.
	b.WriteString("  " + styleBigNumber.Render(c.label.Number) + "  " +
		styleAxis.Render(ui.MetricTitle(sel.Metric)))
	b.WriteByte('\n')
	b.WriteString("  " + styleDate.Render(c.label.Date))
	b.WriteString("\n\n")

	// Sparkline with the highlighted column picked out.
	runes := []rune(ui.Sparkline(c.values, sparkWidth))
	mark := ui.SparkColumn(sel.Index, len(c.values), sparkWidth)
	b.WriteString("  ")
	if mark < len(runes) {
		b.WriteString(styleSparkline.Render(string(runes[:mark])))
		b.WriteString(styleSparkMark.Render(string(runes[mark])))
		b.WriteString(styleSparkline.Render(string(runes[mark+1:])))
	}
	b.WriteByte('\n')
	b.WriteString("  " + strings.Repeat(" ", mark) + styleSparkMark.Render("▲"))
	b.WriteByte('\n')

	// Axis: first and last date of the window.
	b.WriteString("  " + c.axis(len(runes), sel.Window, f))
	b.WriteByte('\n')

	return b.String()
}

func (c *chartView) axis(cols int, w series.Series, f chart.Formatter) string {
	if len(w) == 0 {
		return ""
	}
	first := f.Date(w[0].Date)
	last := f.Date(w[len(w)-1].Date)
	gap := cols - len(first) - len(last)
	if gap < 1 {
		return styleAxis.Render(fmt.Sprintf("%s – %s", first, last))
	}
	return styleAxis.Render(first + strings.Repeat(" ", gap) + last)
}

func renderChoices(names []string, active int) string {
	parts := make([]string, len(names))
	for i, n := range names {
		if i == active {
			parts[i] = styleChoiceActive.Render(n)
		} else {
			parts[i] = styleChoice.Render(n)
		}
	}
	return strings.Join(parts, " ")
}
