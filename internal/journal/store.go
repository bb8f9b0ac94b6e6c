// Package journal optionally records every task outcome in SQLite so a run
// can be inspected after the fact. It is write-only during a run; nothing
// reads it back to resume.
package journal

import (
	"time"
)

// Status is the recorded outcome of one task.
type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Entry is one task outcome row.
type Entry struct {
	LocalPath  string
	RemoteKey  string
	Size       int64
	Status     Status
	Error      string
	Duration   time.Duration
	FinishedAt time.Time
}

// Store defines the interface for journal persistence.
type Store interface {
	Record(entry Entry) error
	Summary() (map[Status]int64, error)
	Close() error
}
