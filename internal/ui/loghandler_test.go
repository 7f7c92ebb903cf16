package ui

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
)

// decodeJSONLines parses one JSON object per line of buf.
func decodeJSONLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

// newLogPair mirrors the --log setup: terse text on the console, every
// level to the JSON file.
func newLogPair(console slog.Level) (*slog.Logger, *bytes.Buffer, *bytes.Buffer) {
	var text, file bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&text, &slog.HandlerOptions{Level: console}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	return slog.New(h), &text, &file
}

func TestTeeEventsRecordsFetchLifecycle(t *testing.T) {
	logger, text, file := newLogPair(slog.LevelWarn)

	in := make(chan event.Event, 4)
	in <- event.Event{Type: event.FetchStarted, Kind: event.National}
	in <- event.Event{Type: event.FetchRetry, Kind: event.National, Attempt: 2, Error: errors.New("503")}
	in <- event.Event{
		Type:    event.FetchCompleted,
		Kind:    event.National,
		Records: make([]series.DailyRecord, 3),
		Bytes:   512,
	}
	in <- event.Event{Type: event.FetchFailed, Kind: event.States, Error: errors.New("fetch failed: states")}
	close(in)

	var forwarded []event.Type
	for ev := range TeeEvents(logger, in) {
		forwarded = append(forwarded, ev.Type)
	}
	assert.Equal(t, []event.Type{
		event.FetchStarted, event.FetchRetry, event.FetchCompleted, event.FetchFailed,
	}, forwarded)

	// Event records are debug level: file only.
	assert.Empty(t, text.String())

	recs := decodeJSONLines(t, file)
	require.Len(t, recs, 4)
	for _, rec := range recs {
		assert.Equal(t, EventMessage, rec["msg"])
		assert.Equal(t, "DEBUG", rec["level"])
	}

	assert.Equal(t, "FetchStarted", recs[0]["type"])
	assert.NotContains(t, recs[0], "attempt")
	assert.NotContains(t, recs[0], "error")

	assert.Equal(t, "FetchRetry", recs[1]["type"])
	assert.InDelta(t, 2, recs[1]["attempt"], 0)
	assert.Equal(t, "503", recs[1]["error"])

	assert.Equal(t, "national", recs[2]["dataset"])
	assert.InDelta(t, 3, recs[2]["records"], 0)
	assert.InDelta(t, 512, recs[2]["bytes"], 0)

	assert.Equal(t, "states", recs[3]["dataset"])
	assert.Equal(t, "fetch failed: states", recs[3]["error"])
}

func TestMultiHandlerRoutesByLevel(t *testing.T) {
	tests := []struct {
		level     slog.Level
		onConsole bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			logger, text, file := newLogPair(slog.LevelWarn)
			logger.Log(context.Background(), tt.level, "fetch failed", "dataset", "states")

			if tt.onConsole {
				assert.Contains(t, text.String(), "dataset=states")
			} else {
				assert.Empty(t, text.String())
			}
			recs := decodeJSONLines(t, file)
			require.Len(t, recs, 1)
			assert.Equal(t, "states", recs[0]["dataset"])
		})
	}
}

func TestMultiHandlerEnabledIfAnyHandlerIs(t *testing.T) {
	quiet := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, quiet.Enabled(context.Background(), slog.LevelWarn))

	logger, _, _ := newLogPair(slog.LevelWarn)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandlerDerivedHandlersReachEveryOutput(t *testing.T) {
	logger, text, file := newLogPair(slog.LevelInfo)
	logger.With("dataset", "national").WithGroup("fetch").Info("fetch complete", "records", 3)

	assert.Contains(t, text.String(), "dataset=national")
	assert.Contains(t, text.String(), "fetch.records=3")

	recs := decodeJSONLines(t, file)
	require.Len(t, recs, 1)
	assert.Equal(t, "national", recs[0]["dataset"])
	group, ok := recs[0]["fetch"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 3, group["records"], 0)
}
