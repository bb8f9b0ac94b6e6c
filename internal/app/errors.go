package app

import "errors"

// Scheduling-level errors. These are fatal to the whole invocation and are
// raised before any task is dispatched; per-file transfer failures are never
// surfaced this way, they only increment the failure tally.
var (
	// ErrSourceNotFound reports that the source path does not exist.
	ErrSourceNotFound = errors.New("source path does not exist")
	// ErrUnsupportedSource reports a source that is neither a regular file
	// nor a directory.
	ErrUnsupportedSource = errors.New("source is neither a regular file nor a directory")
	// ErrSourceExcluded reports that the sole requested file is on the
	// exclusion list, so nothing was uploaded.
	ErrSourceExcluded = errors.New("source file is excluded from upload")
)
