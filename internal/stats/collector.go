package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks fetch statistics using lock-free atomic counters. Fetch
// goroutines write; presenters read snapshots.
type Collector struct {
	requests  atomic.Int64
	retries   atomic.Int64
	failures  atomic.Int64
	bytes     atomic.Int64
	records   atomic.Int64
	startTime time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddRequests(n int64) { c.requests.Add(n) }
func (c *Collector) AddRetries(n int64)  { c.retries.Add(n) }
func (c *Collector) AddFailures(n int64) { c.failures.Add(n) }
func (c *Collector) AddBytes(n int64)    { c.bytes.Add(n) }
func (c *Collector) AddRecords(n int64)  { c.records.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Requests int64
	Retries  int64
	Failures int64
	Bytes    int64
	Records  int64
	Elapsed  time.Duration
}

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests: c.requests.Load(),
		Retries:  c.retries.Load(),
		Failures: c.failures.Load(),
		Bytes:    c.bytes.Load(),
		Records:  c.records.Load(),
		Elapsed:  c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"requests=%d retries=%d failures=%d bytes=%d records=%d",
		s.Requests, s.Retries, s.Failures, s.Bytes, s.Records,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
