package pkg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/perflab/ui_perf_core/types"
	"github.com/stretchr/testify/assert"
)

func TestTaskPool_DeliversResultThroughFuture(t *testing.T) {
	ctx := context.Background()
	pool := NewTaskPool[int](ctx, 2, 8)
	defer pool.Close()

	future, err := pool.Submit(func() (int, error) { return 21 * 2, nil })
	assert.NoError(t, err)

	value, err := future.Wait(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestTaskPool_PropagatesTaskError(t *testing.T) {
	ctx := context.Background()
	pool := NewTaskPool[int](ctx, 1, 8)
	defer pool.Close()

	taskErr := errors.New("boom")
	future, err := pool.Submit(func() (int, error) { return 0, taskErr })
	assert.NoError(t, err)

	_, err = future.Wait(ctx)
	assert.ErrorIs(t, err, taskErr)
}

func TestTaskPool_SubmitNeverBlocks(t *testing.T) {
	ctx := context.Background()
	pool := NewTaskPool[int](ctx, 1, 1)
	defer pool.Close()

	release := make(chan struct{})
	blocker, err := pool.Submit(func() (int, error) {
		<-release
		return 0, nil
	})
	assert.NoError(t, err)

	// Give the single worker time to pick up the blocking task, then fill
	// the one queue slot.
	time.Sleep(20 * time.Millisecond)
	_, err = pool.Submit(func() (int, error) { return 1, nil })
	assert.NoError(t, err)

	start := time.Now()
	_, err = pool.Submit(func() (int, error) { return 2, nil })
	assert.Error(t, err, "a saturated queue should fail instead of blocking")
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	_, err = blocker.Wait(ctx)
	assert.NoError(t, err)
}

func TestTaskPool_RecoversFromPanic(t *testing.T) {
	ctx := context.Background()
	pool := NewTaskPool[int](ctx, 1, 8)
	defer pool.Close()

	future, err := pool.Submit(func() (int, error) { panic("task exploded") })
	assert.NoError(t, err)

	_, err = future.Wait(ctx)
	assert.Error(t, err, "a panicking task should resolve its future with an error")

	// The worker must survive the panic.
	future, err = pool.Submit(func() (int, error) { return 7, nil })
	assert.NoError(t, err)
	value, err := future.Wait(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestTaskPool_CloseIsIdempotent(t *testing.T) {
	pool := NewTaskPool[int](context.Background(), 2, 8)

	assert.NotPanics(t, func() {
		pool.Close()
		pool.Close()
	})

	_, err := pool.Submit(func() (int, error) { return 0, nil })
	assert.Error(t, err, "submit after close should fail")
}

func TestTaskPool_CloseDrainsQueuedTasks(t *testing.T) {
	ctx := context.Background()
	pool := NewTaskPool[int](ctx, 1, 8)

	futures := make([]*types.Future[int], 0, 5)
	for i := 0; i < 5; i++ {
		taskID := i
		future, err := pool.Submit(func() (int, error) { return taskID, nil })
		assert.NoError(t, err)
		futures = append(futures, future)
	}

	pool.Close()

	for i, future := range futures {
		value, err := future.Wait(ctx)
		assert.NoError(t, err)
		assert.Equal(t, i, value, "queued tasks should finish before the pool shuts down")
	}
}

func TestTaskPool_SubmitFailsAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewTaskPool[int](ctx, 1, 8)
	defer pool.Close()

	cancel()
	time.Sleep(20 * time.Millisecond)

	_, err := pool.Submit(func() (int, error) { return 0, nil })
	assert.Error(t, err)
}
