package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pollCounter struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (c *pollCounter) ObservePoll(_ string, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if failed {
		c.failed++
		return
	}
	c.ok++
}

func (c *pollCounter) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ok, c.failed
}

func TestPollerRunsImmediatelyThenOnInterval(t *testing.T) {
	var calls int32
	observer := &pollCounter{}
	p := NewPoller(PollerConfig{Name: "health", Interval: 20 * time.Millisecond, Observer: observer}, func(context.Context) error {
		if atomic.AddInt32(&calls, 1)%2 == 0 {
			return errors.New("backend down")
		}
		return nil
	})

	p.Start(context.Background())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, 5*time.Millisecond)
	p.Stop()

	stopped := atomic.LoadInt32(&calls)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))

	ok, failed := observer.counts()
	assert.GreaterOrEqual(t, ok, 2)
	assert.GreaterOrEqual(t, failed, 1)
}

func TestPollerTicksImmediately(t *testing.T) {
	var calls int32
	p := NewPoller(PollerConfig{Name: "health", Interval: time.Hour}, func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	p.Start(context.Background())
	defer p.Stop()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
}

func TestPollerStopCancelsInFlightRefresh(t *testing.T) {
	started := make(chan struct{})
	var cancelled atomic.Bool
	p := NewPoller(PollerConfig{Name: "stats", Interval: time.Hour}, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})

	p.Start(context.Background())
	<-started
	p.Stop()
	assert.True(t, cancelled.Load())
	p.Stop()
}

func TestPollerRunsNeverOverlap(t *testing.T) {
	var running, maxRunning int32
	p := NewPoller(PollerConfig{Name: "slow", Interval: 2 * time.Millisecond}, func(context.Context) error {
		now := atomic.AddInt32(&running, 1)
		for {
			seen := atomic.LoadInt32(&maxRunning)
			if now <= seen || atomic.CompareAndSwapInt32(&maxRunning, seen, now) {
				break
			}
		}
		time.Sleep(15 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	err := p.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}
