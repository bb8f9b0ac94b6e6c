package worker

import (
	"context"
	"fmt"

	"github.com/dzqdzq/bucketup/internal/metadata"
	"github.com/dzqdzq/bucketup/internal/storage"
)

// Outcome is the explicit result of processing one task. Failures are
// reported through the error return, never by panicking the worker.
type Outcome int

const (
	// Uploaded means the file was transferred.
	Uploaded Outcome = iota
	// Skipped means the remote object already matched and no transfer ran.
	Skipped
)

// TaskProcessor handles individual task processing.
type TaskProcessor struct {
	config Config
	client storage.Client
}

// Process uploads one task's file. With SkipExisting set it first stats the
// remote key and skips the transfer when an object of the same size is
// already there.
func (p *TaskProcessor) Process(ctx context.Context, task Task) (Outcome, error) {
	if p.config.SkipExisting {
		info, exists, err := p.client.StatObject(ctx, p.config.Bucket, task.RemoteKey)
		if err != nil {
			return Uploaded, fmt.Errorf("stat %s: %w", task.RemoteKey, err)
		}
		if exists && info.Size == task.Size {
			return Skipped, nil
		}
	}

	md := metadata.Resolve(task.LocalPath)
	opts := storage.UploadOptions{
		ContentType:  md.ContentType,
		CacheControl: md.CacheControl,
		StorageClass: md.StorageClass,
	}

	if err := p.client.UploadFile(ctx, p.config.Bucket, task.RemoteKey, task.LocalPath, opts); err != nil {
		return Uploaded, fmt.Errorf("upload %s: %w", task.LocalPath, err)
	}

	return Uploaded, nil
}
