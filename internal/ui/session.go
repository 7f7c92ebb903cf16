package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
)

// Preferences is the selection applied once the national data first
// arrives.
type Preferences struct {
	Metric    series.Metric
	TimeScale series.TimeScale
	State     string
}

// Session applies fetch events to a Store and Controller. It is owned by the
// presenter goroutine that drains the event channel, which makes that
// channel the controller's only command queue.
type Session struct {
	Store *series.Store
	Chart *chart.Controller
	Prefs Preferences

	ready        bool
	statePending bool
}

// NewSession wires a fresh store to c.
func NewSession(c *chart.Controller, prefs Preferences) *Session {
	return &Session{
		Store:        series.NewStore(),
		Chart:        c,
		Prefs:        prefs,
		statePending: prefs.State != "",
	}
}

// Ready reports whether national data has been delivered.
func (s *Session) Ready() bool {
	return s.ready
}

// Handle applies one event. Fetch failures are logged and leave the current
// state untouched.
func (s *Session) Handle(ev event.Event) error {
	switch ev.Type {
	case event.FetchCompleted:
		switch ev.Kind {
		case event.National:
			return s.national(ev.Records)
		case event.States:
			return s.states(ev.Records)
		}
	case event.FetchFailed:
		slog.Debug("dataset unavailable", "dataset", ev.Kind.String(), "error", ev.Error)
	}
	return nil
}

func (s *Session) national(recs []series.DailyRecord) error {
	if err := s.Store.IngestNational(recs, true); err != nil {
		return err
	}
	nat, _ := s.Store.National()
	if err := s.Chart.NationalReady(nat); err != nil {
		return err
	}
	if s.ready {
		return nil
	}
	s.ready = true

	if err := s.Chart.SelectMetric(s.Prefs.Metric); err != nil {
		return err
	}
	if err := s.Chart.SelectTimeScale(s.Prefs.TimeScale); err != nil {
		return err
	}
	return s.applyState()
}

func (s *Session) states(recs []series.DailyRecord) error {
	if err := s.Store.IngestStates(recs, true); err != nil {
		return err
	}
	groups, _ := s.Store.States()
	if err := s.Chart.StatesReady(groups); err != nil {
		return err
	}
	return s.applyState()
}

// applyState selects the preferred state once both datasets are in.
func (s *Session) applyState() error {
	if !s.statePending || !s.ready || !s.Chart.StatesAvailable() {
		return nil
	}
	s.statePending = false
	if err := s.Chart.SelectState(s.Prefs.State); err != nil {
		if errors.Is(err, chart.ErrUnknownState) {
			return fmt.Errorf("state %q: %w", s.Prefs.State, err)
		}
		return err
	}
	return nil
}
