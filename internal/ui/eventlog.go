package ui

import (
	"context"
	"log/slog"

	"github.com/bamsammich/covidspark/internal/event"
)

// EventMessage is the log message of every record written by TeeEvents.
const EventMessage = "covidspark.event"

// EventAttrs returns the structured fields logged for ev. attempt and error
// are only present on retries and failures.
func EventAttrs(ev event.Event) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("type", ev.Type.String()),
		slog.String("dataset", ev.Kind.String()),
		slog.Int("records", len(ev.Records)),
		slog.Int64("bytes", ev.Bytes),
	}
	if ev.Attempt > 0 {
		attrs = append(attrs, slog.Int("attempt", ev.Attempt))
	}
	if ev.Error != nil {
		attrs = append(attrs, slog.String("error", ev.Error.Error()))
	}
	return attrs
}

// TeeEvents logs each event from in at debug level and forwards it, in
// order, on the returned channel. The returned channel is closed once in is
// closed and drained.
func TeeEvents(logger *slog.Logger, in <-chan event.Event) <-chan event.Event {
	out := make(chan event.Event, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			logger.LogAttrs(context.Background(), slog.LevelDebug, EventMessage, EventAttrs(ev)...)
			out <- ev
		}
	}()
	return out
}
