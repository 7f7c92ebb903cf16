package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 50
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.AddRequests(1)
				c.AddRetries(1)
				c.AddFailures(1)
				c.AddBytes(512)
				c.AddRecords(3)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.Requests)
	assert.Equal(t, expected, s.Retries)
	assert.Equal(t, expected, s.Failures)
	assert.Equal(t, expected*512, s.Bytes)
	assert.Equal(t, expected*3, s.Records)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{Requests: 2, Retries: 1, Failures: 0, Bytes: 4096, Records: 420}
	assert.Equal(t, "requests=2 retries=1 failures=0 bytes=4096 records=420", s.String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestElapsedAdvances(t *testing.T) {
	c := NewCollector()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, c.Snapshot().Elapsed, 5*time.Millisecond)
}
