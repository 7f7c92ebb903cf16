package ui

import (
	"fmt"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  requests 2  records 20,780  size 3.1 MiB  time 2s  errors 0
func CompletionSummary(snap stats.Snapshot, f chart.Formatter) string {
	icon := "✓"
	if snap.Failures > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  requests %d  records %s  size %s  time %s",
		icon,
		snap.Requests,
		f.Number(snap.Records),
		FormatBytes(snap.Bytes),
		FormatDuration(snap.Elapsed),
	)
	if snap.Retries > 0 {
		base += fmt.Sprintf("  retries %d", snap.Retries)
	}
	return base + fmt.Sprintf("  errors %d", snap.Failures)
}
