package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRequiresStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.TryEnqueue(Job{ID: "1"}))

	q.Start(context.Background())
	q.Stop()
	assert.Error(t, q.TryEnqueue(Job{ID: "2"}))
}

func TestQueueTryEnqueueReportsFull(t *testing.T) {
	release := make(chan struct{})
	picked := make(chan struct{}, 1)
	q := NewQueue("busy", func(ctx context.Context, _ Job) error {
		picked <- struct{}{}
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{ID: "1"}))
	<-picked
	require.NoError(t, q.TryEnqueue(Job{ID: "2"}))
	assert.ErrorIs(t, q.TryEnqueue(Job{ID: "3"}), ErrQueueFull)
	assert.Equal(t, uint64(1), q.Stats().Dropped)
	close(release)
}

func TestQueueDoesNotRetryFailedJobs(t *testing.T) {
	var attempts int32
	q := NewQueue("once", func(context.Context, Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("down")
	}, QueueConfig{})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.TryEnqueue(Job{ID: "1"}))
	require.Eventually(t, func() bool { return q.Stats().Failed == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	assert.Equal(t, uint64(1), q.Stats().Processed)
}
