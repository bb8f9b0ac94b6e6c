package worker

import (
	"context"
	"sync"
	"time"

	"github.com/dzqdzq/bucketup/internal/journal"
	"github.com/dzqdzq/bucketup/internal/metrics"
	"github.com/dzqdzq/bucketup/internal/storage"
	"github.com/dzqdzq/bucketup/internal/tally"

	"go.uber.org/zap"
)

// Pool manages a bounded pool of upload workers. It is created fresh per
// invocation and fully drained before the scheduler reads the tally.
type Pool struct {
	size    int
	config  Config
	client  storage.Client
	tally   *tally.Tally
	metrics *metrics.Collector
	journal journal.Store
	logger  *zap.Logger
}

// NewPool creates a new worker pool. journalStore may be nil when journaling
// is disabled.
func NewPool(
	size int,
	config Config,
	client storage.Client,
	transferTally *tally.Tally,
	metricsCollector *metrics.Collector,
	journalStore journal.Store,
	logger *zap.Logger,
) *Pool {
	return &Pool{
		size:    size,
		config:  config,
		client:  client,
		tally:   transferTally,
		metrics: metricsCollector,
		journal: journalStore,
		logger:  logger,
	}
}

// Start starts the worker pool consuming from tasks until the channel is
// closed. Callers wait on wg to drain the pool.
func (p *Pool) Start(ctx context.Context, tasks <-chan Task, wg *sync.WaitGroup) {
	for i := 0; i < p.size; i++ {
		wg.Add(1)
		go p.worker(ctx, i, tasks, wg)
	}
}

func (p *Pool) worker(ctx context.Context, id int, tasks <-chan Task, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := p.logger.With(zap.Int("worker_id", id))
	logger.Debug("worker started")

	for {
		select {
		case task, ok := <-tasks:
			if !ok {
				logger.Debug("worker finished, no more tasks")
				return
			}
			p.RunOne(ctx, task)

		case <-ctx.Done():
			logger.Debug("worker stopped, context cancelled")
			return
		}
	}
}

// RunOne processes a single task and folds its outcome into the tally,
// metrics, and journal. The single-file path calls this directly, without
// spinning up workers. One task's failure never affects its siblings.
func (p *Pool) RunOne(ctx context.Context, task Task) {
	start := time.Now()

	p.metrics.InflightInc()
	defer p.metrics.InflightDec()

	processor := &TaskProcessor{config: p.config, client: p.client}
	outcome, err := processor.Process(ctx, task)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		n := p.tally.AddFailed()
		p.metrics.IncFailed()
		p.logger.Error("upload failed",
			zap.String("file", task.LocalPath),
			zap.String("key", task.RemoteKey),
			zap.Int64("failed", n),
			zap.Error(err),
		)
		p.record(task, journal.StatusFailed, elapsed, err)

	case outcome == Skipped:
		n := p.tally.AddSkipped(task.Size)
		p.metrics.IncSkipped()
		p.logger.Info("skipped, already uploaded",
			zap.String("file", task.LocalPath),
			zap.String("key", task.RemoteKey),
			zap.Int64("skipped", n),
		)
		p.record(task, journal.StatusSkipped, elapsed, nil)

	default:
		n := p.tally.AddUploaded(task.Size)
		p.metrics.IncUploaded(task.Size)
		p.metrics.ObserveDuration(elapsed)
		p.logger.Info("uploaded",
			zap.String("file", task.LocalPath),
			zap.String("key", task.RemoteKey),
			zap.Int64("uploaded", n),
			zap.Duration("duration", elapsed),
		)
		p.record(task, journal.StatusUploaded, elapsed, nil)
	}
}

func (p *Pool) record(task Task, status journal.Status, elapsed time.Duration, cause error) {
	if p.journal == nil {
		return
	}

	entry := journal.Entry{
		LocalPath: task.LocalPath,
		RemoteKey: task.RemoteKey,
		Size:      task.Size,
		Status:    status,
		Duration:  elapsed,
	}
	if cause != nil {
		entry.Error = cause.Error()
	}

	if err := p.journal.Record(entry); err != nil {
		p.logger.Warn("failed to journal task outcome",
			zap.String("key", task.RemoteKey),
			zap.Error(err),
		)
	}
}
