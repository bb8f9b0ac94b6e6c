package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dzqdzq/bucketup/internal/filter"
	"github.com/dzqdzq/bucketup/internal/keys"
	"github.com/dzqdzq/bucketup/internal/worker"
)

// Plan is the outcome of enumerating the source: the tasks to dispatch plus
// the files the filter excluded or flagged. Task order follows directory
// walk order; completion order is up to the network.
type Plan struct {
	Tasks    []worker.Task
	Excluded []string
	Warned   []string
}

// planDirectory walks root recursively and builds the upload plan. Excluded
// files are dropped; warned files are planned anyway and listed so the
// operator sees them before the run proceeds.
func planDirectory(root, prefix string, mode keys.Mode) (*Plan, error) {
	plan := &Plan{}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		switch filter.Classify(path) {
		case filter.Exclude:
			plan.Excluded = append(plan.Excluded, path)
			return nil
		case filter.Warn:
			plan.Warned = append(plan.Warned, path)
		}

		key, err := keys.ForTreeFile(prefix, root, path, mode)
		if err != nil {
			return err
		}

		plan.Tasks = append(plan.Tasks, worker.Task{
			LocalPath: path,
			RemoteKey: key,
			Size:      info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return plan, nil
}

// planFile builds the upload plan for a single-file source. An excluded
// source yields an empty task list; the caller treats that as a failed run
// since nothing gets uploaded.
func planFile(path, prefix string, size int64) *Plan {
	plan := &Plan{}

	switch filter.Classify(path) {
	case filter.Exclude:
		plan.Excluded = append(plan.Excluded, path)
		return plan
	case filter.Warn:
		plan.Warned = append(plan.Warned, path)
	}

	plan.Tasks = append(plan.Tasks, worker.Task{
		LocalPath: path,
		RemoteKey: keys.ForFile(prefix, path),
		Size:      size,
	})
	return plan
}
