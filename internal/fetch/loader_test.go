package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
)

type fakeSource struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	fail    map[event.Kind]error
}

func (f *fakeSource) Fetch(
	ctx context.Context,
	kind event.Kind,
	_ func(event.Event),
) ([]series.DailyRecord, int64, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if err := f.fail[kind]; err != nil {
		return nil, 0, err
	}
	return []series.DailyRecord{{Date: series.Day(2021, time.January, 1)}}, 42, nil
}

func drain(ch <-chan event.Event) []event.Event {
	var out []event.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestLoaderStartEmitsBothDatasets(t *testing.T) {
	events := make(chan event.Event, 16)
	src := &fakeSource{fail: map[event.Kind]error{event.States: errors.New("boom")}}
	l := NewLoader(src, events)

	l.Start(context.Background())
	l.Wait()

	got := drain(events)
	require.Len(t, got, 4)

	var completed, failed []event.Kind
	for _, ev := range got {
		switch ev.Type {
		case event.FetchCompleted:
			completed = append(completed, ev.Kind)
			assert.Len(t, ev.Records, 1)
			assert.Equal(t, int64(42), ev.Bytes)
		case event.FetchFailed:
			failed = append(failed, ev.Kind)
			assert.Error(t, ev.Error)
		}
	}
	assert.Equal(t, []event.Kind{event.National}, completed)
	assert.Equal(t, []event.Kind{event.States}, failed)
}

func TestLoaderJoinsInFlightFetch(t *testing.T) {
	events := make(chan event.Event, 16)
	src := &fakeSource{
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	l := NewLoader(src, events)
	ctx := context.Background()

	l.Go(ctx, event.National)
	<-src.started

	shared := make(chan bool, 1)
	go func() { shared <- l.Load(ctx, event.National) }()
	time.Sleep(50 * time.Millisecond)

	close(src.release)
	l.Wait()

	assert.True(t, <-shared)
	assert.Equal(t, int32(1), src.calls.Load())

	var completed int
	for _, ev := range drain(events) {
		if ev.Type == event.FetchCompleted {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}

func TestLoaderSequentialLoadsRefetch(t *testing.T) {
	events := make(chan event.Event, 16)
	src := &fakeSource{}
	l := NewLoader(src, events)

	assert.False(t, l.Load(context.Background(), event.States))
	assert.False(t, l.Load(context.Background(), event.States))
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoaderCanceledContextDoesNotBlock(t *testing.T) {
	events := make(chan event.Event) // unbuffered, never read
	src := &fakeSource{}
	l := NewLoader(src, events)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		l.Load(ctx, event.National)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Load blocked on a canceled context")
	}
}

// lingeringSource keeps working briefly after its context is canceled, then
// reports the cancellation.
type lingeringSource struct {
	started chan struct{}
}

func (s *lingeringSource) Fetch(
	ctx context.Context,
	_ event.Kind,
	_ func(event.Event),
) ([]series.DailyRecord, int64, error) {
	s.started <- struct{}{}
	<-ctx.Done()
	time.Sleep(50 * time.Millisecond)
	return nil, 0, ctx.Err()
}

func TestLoaderWaitCoversCanceledFetches(t *testing.T) {
	events := make(chan event.Event, 16)
	src := &lingeringSource{started: make(chan struct{}, 2)}
	l := NewLoader(src, events)

	ctx, cancel := context.WithCancel(context.Background())
	l.Start(ctx)
	<-src.started
	<-src.started
	cancel()

	l.Wait()
	// Inline mode closes the channel right after Wait; a late send would
	// panic here.
	require.NotPanics(t, func() { close(events) })
	time.Sleep(100 * time.Millisecond)

	for ev := range events {
		assert.NotEqual(t, event.FetchCompleted, ev.Type)
	}
}
