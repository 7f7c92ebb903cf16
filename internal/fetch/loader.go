package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
)

// Source is the dataset download the Loader drives.
type Source interface {
	Fetch(ctx context.Context, kind event.Kind, report func(event.Event)) ([]series.DailyRecord, int64, error)
}

// Loader runs dataset fetches and reports their progress on an event
// channel. At most one fetch of each kind is outstanding; a Load issued
// while one is running waits for it instead of starting another.
type Loader struct {
	src    Source
	events chan<- event.Event
	group  singleflight.Group
	wg     sync.WaitGroup
}

// NewLoader returns a Loader that reports to events. The Loader never
// closes events.
func NewLoader(src Source, events chan<- event.Event) *Loader {
	return &Loader{src: src, events: events}
}

// Start launches the national and states fetches in the background.
func (l *Loader) Start(ctx context.Context) {
	l.Go(ctx, event.National)
	l.Go(ctx, event.States)
}

// Go launches a background Load of kind.
func (l *Loader) Go(ctx context.Context, kind event.Kind) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.Load(ctx, kind)
	}()
}

// Wait blocks until every fetch launched with Go or Start has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Load fetches kind and blocks until the fetch, including its event
// sends, has finished. It reports whether this call joined a fetch already
// in flight. A canceled ctx ends the fetch early; Load still waits for it
// so no send can follow a Wait.
func (l *Loader) Load(ctx context.Context, kind event.Kind) bool {
	res := <-l.group.DoChan(kind.String(), func() (any, error) {
		l.run(ctx, kind)
		return nil, nil
	})
	return res.Shared
}

func (l *Loader) run(ctx context.Context, kind event.Kind) {
	l.emit(ctx, event.Event{Type: event.FetchStarted, Kind: kind, Timestamp: time.Now()})

	recs, n, err := l.src.Fetch(ctx, kind, func(ev event.Event) { l.emit(ctx, ev) })
	if err != nil {
		slog.Warn("fetch failed", "dataset", kind.String(), "error", err)
		l.emit(ctx, event.Event{
			Type:      event.FetchFailed,
			Kind:      kind,
			Timestamp: time.Now(),
			Error:     err,
		})
		return
	}

	slog.Info("fetch complete", "dataset", kind.String(), "records", len(recs), "bytes", n)
	l.emit(ctx, event.Event{
		Type:      event.FetchCompleted,
		Kind:      kind,
		Timestamp: time.Now(),
		Records:   recs,
		Bytes:     n,
	})
}

func (l *Loader) emit(ctx context.Context, ev event.Event) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}
