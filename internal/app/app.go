// Package app wires the uploader together and schedules the transfer run.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dzqdzq/bucketup/internal/config"
	"github.com/dzqdzq/bucketup/internal/journal"
	"github.com/dzqdzq/bucketup/internal/keys"
	"github.com/dzqdzq/bucketup/internal/metrics"
	"github.com/dzqdzq/bucketup/internal/storage"
	"github.com/dzqdzq/bucketup/internal/tally"
	"github.com/dzqdzq/bucketup/internal/worker"

	"go.uber.org/zap"
)

// Result is the aggregate outcome of one upload invocation.
type Result struct {
	Uploaded int64
	Failed   int64
	Skipped  int64
	Bytes    int64
	Elapsed  time.Duration
	OK       bool
}

// Uploader is the upload scheduler: it walks the source, builds the task
// list, and drains it through a bounded worker pool.
type Uploader struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  storage.Client
	metrics *metrics.Collector
	journal journal.Store
}

// New creates an uploader backed by a MinIO storage client and, when
// configured, a SQLite journal.
func New(cfg *config.Config, logger *zap.Logger) (*Uploader, error) {
	client, err := storage.NewMinIOClient(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Region:    cfg.Storage.Region,
		Secure:    cfg.Storage.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var journalStore journal.Store
	if cfg.Journal != "" {
		journalStore, err = journal.NewSQLiteStore(cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
	}

	return &Uploader{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: metrics.New(),
		journal: journalStore,
	}, nil
}

// NewWithClient creates an uploader around an existing storage client.
// Used by tests to substitute a fake.
func NewWithClient(cfg *config.Config, client storage.Client, logger *zap.Logger) *Uploader {
	return &Uploader{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: metrics.New(),
	}
}

// Run uploads source to the destination prefix and reports the aggregate
// result. The returned error is set only for scheduling-level failures;
// individual transfer failures surface through Result.Failed and OK.
func (u *Uploader) Run(ctx context.Context, source, dest string, mode keys.Mode) (*Result, error) {
	start := time.Now()
	defer func() {
		u.logger.Info("total elapsed",
			zap.String("duration", tally.FormatDuration(time.Since(start))))
	}()

	if u.cfg.MetricsAddr != "" {
		go func() {
			if err := u.metrics.StartServer(u.cfg.MetricsAddr); err != nil {
				u.logger.Error("failed to start metrics server", zap.Error(err))
			}
		}()
	}

	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		return nil, fmt.Errorf("stat source %s: %w", source, err)
	}

	var plan *Plan
	switch {
	case info.Mode().IsRegular():
		plan = planFile(source, dest, info.Size())
		if len(plan.Tasks) == 0 {
			u.logger.Error("excluded file requested, nothing to upload",
				zap.String("file", source))
			return u.result(tally.New(), start, false), fmt.Errorf("%w: %s", ErrSourceExcluded, source)
		}

	case info.IsDir():
		u.logger.Info("uploading directory",
			zap.String("source", source),
			zap.String("destination", dest),
			zap.String("mode", mode.String()),
			zap.Int("workers", u.cfg.Upload.Workers),
		)
		plan, err = planDirectory(source, dest, mode)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}

	u.report(plan)

	if u.cfg.Upload.DryRun {
		return u.dryRun(plan, start), nil
	}

	transferTally := tally.New()
	pool := worker.NewPool(
		u.cfg.Upload.Workers,
		worker.Config{
			Bucket:       u.cfg.Storage.Bucket,
			SkipExisting: u.cfg.Upload.SkipExisting,
		},
		u.client,
		transferTally,
		u.metrics,
		u.journal,
		u.logger,
	)

	switch len(plan.Tasks) {
	case 0:
		u.logger.Info("no files to upload")

	case 1:
		// One task does not need the pool.
		pool.RunOne(ctx, plan.Tasks[0])

	default:
		tasks := make(chan worker.Task, u.cfg.Upload.Workers*2)

		var wg sync.WaitGroup
		pool.Start(ctx, tasks, &wg)

	enqueue:
		for _, task := range plan.Tasks {
			select {
			case tasks <- task:
			case <-ctx.Done():
				break enqueue
			}
		}
		close(tasks)
		wg.Wait()
	}

	snap := transferTally.Snapshot()
	res := u.result(transferTally, start, snap.Failed == 0)

	u.logger.Info("upload finished",
		zap.Int64("uploaded", res.Uploaded),
		zap.Int64("failed", res.Failed),
		zap.Int64("skipped", res.Skipped),
		zap.String("bytes", tally.FormatBytes(res.Bytes)),
	)

	return res, nil
}

// report logs the filter decisions before any transfer starts.
func (u *Uploader) report(plan *Plan) {
	if len(plan.Excluded) > 0 {
		u.logger.Info("excluded files",
			zap.Int("count", len(plan.Excluded)),
			zap.Strings("files", plan.Excluded),
		)
	}
	for _, path := range plan.Warned {
		u.logger.Warn("uploading hidden file, confirm this is intended",
			zap.String("file", path))
	}
	u.logger.Info("files to upload", zap.Int("count", len(plan.Tasks)))
}

func (u *Uploader) dryRun(plan *Plan, start time.Time) *Result {
	for _, task := range plan.Tasks {
		u.logger.Info("would upload",
			zap.String("file", task.LocalPath),
			zap.String("key", task.RemoteKey),
		)
	}
	return &Result{Elapsed: time.Since(start), OK: true}
}

func (u *Uploader) result(t *tally.Tally, start time.Time, ok bool) *Result {
	snap := t.Snapshot()
	return &Result{
		Uploaded: snap.Uploaded,
		Failed:   snap.Failed,
		Skipped:  snap.Skipped,
		Bytes:    snap.Bytes,
		Elapsed:  time.Since(start),
		OK:       ok,
	}
}

// Close releases the uploader's resources.
func (u *Uploader) Close() error {
	if u.journal != nil {
		return u.journal.Close()
	}
	return nil
}
