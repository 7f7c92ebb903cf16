package chart

import (
	"errors"
	"fmt"

	"github.com/bamsammich/covidspark/internal/series"
)

var (
	// ErrDataNotReady is returned by selection calls made before the dataset
	// they depend on has been delivered.
	ErrDataNotReady = errors.New("data not ready")
	// ErrUnknownState is returned when selecting a state code that is not in
	// the per-state data.
	ErrUnknownState = errors.New("unknown state")
)

// Widget receives chart output. Render gets the visible values in
// chronological order; SetLabel gets the text for the highlighted record.
type Widget interface {
	Render(values []int64)
	SetLabel(l Label)
}

// Selection is a read-only view of the controller's current state.
type Selection struct {
	Metric      series.Metric
	TimeScale   series.TimeScale
	State       string // empty for national
	Window      series.Series
	Index       int
	Highlighted series.DailyRecord
}

type selection struct {
	metric series.Metric
	scale  series.TimeScale
	state  string
	window series.Series
	index  int
}

// Controller derives the chart values and label from the delivered data and
// the user's selection.
//
// Controller is not safe for concurrent use. All calls, including the
// NationalReady/StatesReady deliveries, must come from one goroutine.
type Controller struct {
	widget Widget
	format Formatter

	national series.Series
	states   map[string]series.Series

	// nil until the first national delivery
	sel *selection
}

// NewController returns a Controller that reports to w. w may be nil.
func NewController(w Widget, f Formatter) *Controller {
	return &Controller{widget: w, format: f}
}

// NationalReady delivers a chronological national series. The first
// delivery selects (Positive, Max) and highlights the latest record; later
// deliveries keep the metric and time scale and highlight the latest record
// of the new window.
func (c *Controller) NationalReady(s series.Series) error {
	if len(s) == 0 {
		return fmt.Errorf("national: %w", series.ErrEmptyDataset)
	}

	if c.sel == nil {
		next, err := newSelection(s, series.Positive, series.Max, "")
		if err != nil {
			return err
		}
		c.national = s
		c.sel = next
		c.render()
		return nil
	}

	if c.sel.state != "" {
		// A state is on screen; the new national data shows up when the
		// user switches back.
		c.national = s
		return nil
	}

	next, err := newSelection(s, c.sel.metric, c.sel.scale, "")
	if err != nil {
		return err
	}
	c.national = s
	c.sel = next
	c.render()
	return nil
}

// StatesReady delivers the per-state series, keyed by state code. If the
// active state is missing from the new data the view falls back to national.
func (c *Controller) StatesReady(m map[string]series.Series) error {
	if len(m) == 0 {
		return fmt.Errorf("states: %w", series.ErrEmptyDataset)
	}
	if c.sel == nil || c.sel.state == "" {
		c.states = m
		return nil
	}

	src, state := m[c.sel.state], c.sel.state
	if len(src) == 0 {
		src, state = c.national, ""
	}
	next, err := newSelection(src, c.sel.metric, c.sel.scale, state)
	if err != nil {
		return err
	}
	c.states = m
	c.sel = next
	c.render()
	return nil
}

// SelectMetric changes the charted metric. The window and highlighted record
// are unchanged.
func (c *Controller) SelectMetric(m series.Metric) error {
	if c.sel == nil {
		return ErrDataNotReady
	}
	c.sel.metric = m
	c.render()
	return nil
}

// SelectTimeScale changes the visible window and highlights its latest
// record.
func (c *Controller) SelectTimeScale(scale series.TimeScale) error {
	if c.sel == nil {
		return ErrDataNotReady
	}
	next, err := newSelection(c.source(), c.sel.metric, scale, c.sel.state)
	if err != nil {
		return err
	}
	c.sel = next
	c.render()
	return nil
}

// SelectState switches the chart to one state's series, or back to the
// national series when code is empty.
func (c *Controller) SelectState(code string) error {
	if c.sel == nil {
		return ErrDataNotReady
	}

	src := c.national
	if code != "" {
		if c.states == nil {
			return ErrDataNotReady
		}
		var ok bool
		if src, ok = c.states[code]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownState, code)
		}
	}

	next, err := newSelection(src, c.sel.metric, c.sel.scale, code)
	if err != nil {
		return err
	}
	c.sel = next
	c.render()
	return nil
}

// Scrub highlights the record at index within the visible window. Indexes
// outside the window are ignored; scrub events may trail a window change.
func (c *Controller) Scrub(index int) error {
	if c.sel == nil {
		return ErrDataNotReady
	}
	if index < 0 || index >= len(c.sel.window) {
		return nil
	}
	c.sel.index = index
	if c.widget != nil {
		c.widget.SetLabel(c.label())
	}
	return nil
}

// Label returns the text for the highlighted record.
func (c *Controller) Label() (Label, error) {
	if c.sel == nil {
		return Label{}, ErrDataNotReady
	}
	return c.label(), nil
}

// Values returns the visible values in chronological order.
func (c *Controller) Values() ([]int64, error) {
	if c.sel == nil {
		return nil, ErrDataNotReady
	}
	return c.sel.window.Values(c.sel.metric), nil
}

// Selection returns the current selection.
func (c *Controller) Selection() (Selection, error) {
	if c.sel == nil {
		return Selection{}, ErrDataNotReady
	}
	return Selection{
		Metric:      c.sel.metric,
		TimeScale:   c.sel.scale,
		State:       c.sel.state,
		Window:      c.sel.window,
		Index:       c.sel.index,
		Highlighted: c.sel.window[c.sel.index],
	}, nil
}

// StatesAvailable reports whether per-state data has been delivered.
func (c *Controller) StatesAvailable() bool {
	return c.states != nil
}

// StateCodes returns the delivered state codes in sorted order.
func (c *Controller) StateCodes() []string {
	return series.SortedCodes(c.states)
}

func (c *Controller) source() series.Series {
	if c.sel != nil && c.sel.state != "" {
		return c.states[c.sel.state]
	}
	return c.national
}

func (c *Controller) label() Label {
	r := c.sel.window[c.sel.index]
	return Label{
		Number: c.format.Number(c.sel.metric.ValueOf(r)),
		Date:   c.format.Date(r.Date),
	}
}

func (c *Controller) render() {
	if c.widget == nil {
		return
	}
	c.widget.Render(c.sel.window.Values(c.sel.metric))
	c.widget.SetLabel(c.label())
}

func newSelection(
	s series.Series,
	m series.Metric,
	scale series.TimeScale,
	state string,
) (*selection, error) {
	w, err := series.Apply(s, scale)
	if err != nil {
		return nil, err
	}
	return &selection{
		metric: m,
		scale:  scale,
		state:  state,
		window: w,
		index:  len(w) - 1,
	}, nil
}
