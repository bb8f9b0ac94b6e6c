// Package filter classifies local files before they are scheduled.
package filter

import (
	"path/filepath"
	"strings"
)

// Class is the scheduling decision for one file.
type Class int

const (
	// Include schedules the file normally.
	Include Class = iota
	// Warn schedules the file but flags it to the operator first.
	Warn
	// Exclude drops the file; it is never scheduled.
	Exclude
)

func (c Class) String() string {
	switch c {
	case Warn:
		return "warn"
	case Exclude:
		return "exclude"
	default:
		return "include"
	}
}

// Classify decides whether a file is uploaded. Finder droppings are excluded
// outright; other hidden files upload with a warning.
func Classify(localPath string) Class {
	name := filepath.Base(localPath)

	if name == ".DS_Store" {
		return Exclude
	}
	if strings.HasPrefix(name, ".") {
		return Warn
	}
	return Include
}
