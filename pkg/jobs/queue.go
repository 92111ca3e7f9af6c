package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of queued work.
type Job struct {
	ID       string
	Type     string
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// ErrQueueFull is returned by TryEnqueue when the buffer has no free slot.
var ErrQueueFull = errors.New("queue full")

// QueueStats counts jobs over the queue's lifetime.
type QueueStats struct {
	Processed uint64 `json:"processed"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Queue dispatches jobs to a fixed set of worker goroutines. Producers never
// block: a saturated buffer rejects the job. Failed jobs are logged and not
// retried; the next scheduled job is the retry.
type Queue struct {
	name    string
	handler Handler
	workers int
	logger  *zap.Logger
	jobs    chan Job

	processed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewQueue builds a queue around handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		workers: cfg.Workers,
		logger:  cfg.Logger,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Later calls are no-ops.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 1; i <= q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	q.started = true
	q.logger.Debug("queue started", zap.String("queue", q.name), zap.Int("workers", q.workers))
}

// Stop cancels the workers, including a running job, and waits for them.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	stats := q.Stats()
	q.logger.Debug("queue stopped",
		zap.String("queue", q.name),
		zap.Uint64("processed", stats.Processed),
		zap.Uint64("failed", stats.Failed),
		zap.Uint64("dropped", stats.Dropped),
	)
}

// TryEnqueue hands job to a worker without blocking. It returns ErrQueueFull
// when the buffer is saturated.
func (q *Queue) TryEnqueue(job Job) error {
	q.mu.Lock()
	ctx, started := q.ctx, q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("queue %s stopped: %w", q.name, err)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		q.dropped.Add(1)
		return ErrQueueFull
	}
}

// Stats returns the lifetime counters.
func (q *Queue) Stats() QueueStats {
	return QueueStats{
		Processed: q.processed.Load(),
		Failed:    q.failed.Load(),
		Dropped:   q.dropped.Load(),
	}
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			err := q.handler(q.ctx, job)
			q.processed.Add(1)
			if err == nil {
				continue
			}
			q.failed.Add(1)
			q.logger.Warn("job failed",
				zap.String("queue", q.name),
				zap.Int("worker", id),
				zap.String("job_id", job.ID),
				zap.String("type", job.Type),
				zap.Duration("waited", time.Since(job.Enqueued)),
				zap.Error(err),
			)
		}
	}
}
