package jobs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PollFunc refreshes one piece of remote state.
type PollFunc func(ctx context.Context) error

// PollObserver records poller ticks.
type PollObserver interface {
	ObservePoll(name string, failed bool)
}

// PollerConfig configures a Poller.
type PollerConfig struct {
	Name     string
	Interval time.Duration
	Logger   *zap.Logger
	Observer PollObserver
}

// Poller runs a refresh immediately and then on every interval. Ticks go
// through a single-worker Queue so runs never overlap; at most one tick waits
// behind a running one and further ticks are dropped.
type Poller struct {
	name     string
	interval time.Duration
	fn       PollFunc
	logger   *zap.Logger
	observer PollObserver

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a poller for fn.
func NewPoller(cfg PollerConfig, fn PollFunc) *Poller {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Poller{
		name:     cfg.Name,
		interval: cfg.Interval,
		fn:       fn,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

// Run polls until ctx is cancelled. It returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	queue := NewQueue("poll:"+p.name, p.handle, QueueConfig{
		Workers:    1,
		BufferSize: 1,
		Logger:     p.logger,
	})
	queue.Start(ctx)
	defer queue.Stop()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var seq uint64
	p.tick(queue, &seq)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(queue, &seq)
		}
	}
}

// Start runs the poller in the background until Stop or ctx cancellation.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		_ = p.Run(runCtx)
	}(p.done)
	p.logger.Info("poller started", zap.String("poller", p.name), zap.Duration("interval", p.interval))
}

// Stop cancels the poller, including an in-flight refresh, and waits for it.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("poller stopped", zap.String("poller", p.name))
}

func (p *Poller) tick(queue *Queue, seq *uint64) {
	*seq++
	err := queue.TryEnqueue(Job{ID: strconv.FormatUint(*seq, 10), Type: p.name})
	switch {
	case err == nil:
	case errors.Is(err, ErrQueueFull):
		p.logger.Debug("poll tick skipped, previous run still busy", zap.String("poller", p.name))
	default:
		p.logger.Debug("poll tick not queued", zap.String("poller", p.name), zap.Error(err))
	}
}

func (p *Poller) handle(ctx context.Context, _ Job) error {
	err := p.fn(ctx)
	if p.observer != nil {
		p.observer.ObservePoll(p.name, err != nil)
	}
	return err
}
