// Package tally tracks per-run upload outcomes.
package tally

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uploaded int64
	Failed   int64
	Skipped  int64
	Bytes    int64
}

// Attempted returns how many uploads were actually tried, skips excluded.
func (s Snapshot) Attempted() int64 {
	return s.Uploaded + s.Failed
}

// Tally is the shared outcome counter mutated by workers. All increments run
// under one mutex so completions are never lost. The Add methods return the
// updated counter for running-count log lines.
type Tally struct {
	mu       sync.Mutex
	uploaded int64
	failed   int64
	skipped  int64
	bytes    int64
}

// New creates an empty tally.
func New() *Tally {
	return &Tally{}
}

// AddUploaded records one successful upload of the given size.
func (t *Tally) AddUploaded(bytes int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.uploaded++
	t.bytes += bytes
	return t.uploaded
}

// AddFailed records one failed upload.
func (t *Tally) AddFailed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failed++
	return t.failed
}

// AddSkipped records one task skipped because the object already exists.
func (t *Tally) AddSkipped(bytes int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.skipped++
	return t.skipped
}

// Snapshot returns a consistent copy of all counters.
func (t *Tally) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Uploaded: t.uploaded,
		Failed:   t.failed,
		Skipped:  t.skipped,
		Bytes:    t.bytes,
	}
}

// FormatBytes formats bytes in human readable form for the summary line.
func FormatBytes(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
	}
}

// FormatDuration formats a duration in human readable form.
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
