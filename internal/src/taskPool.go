package src

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/perflab/ui_perf_core/types"
)

const defaultTaskQueueSize = 16

type poolTask[T any] struct {
	run    func() (T, error)
	future *types.Future[T]
}

// TaskPool runs pure functions on a fixed set of worker goroutines and
// resolves a future with each result. Submission never blocks: a saturated
// queue fails immediately instead of stalling the caller.
type TaskPool[T any] struct {
	mutex    sync.RWMutex
	ctx      context.Context
	tasks    chan poolTask[T]
	wg       sync.WaitGroup
	isClosed bool
}

// NewTaskPool starts workers goroutines consuming a queue of queueSize
// pending tasks. Non-positive workers are normalized to 1, a non-positive
// queueSize to a small default. The pool stops abruptly when ctx is
// cancelled and gracefully on Close.
func NewTaskPool[T any](ctx context.Context, workers, queueSize int) *TaskPool[T] {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = defaultTaskQueueSize
	}

	pool := &TaskPool[T]{}
	pool.ctx = ctx
	pool.tasks = make(chan poolTask[T], queueSize)

	pool.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.worker()
	}

	return pool
}

// Submit enqueues task and returns a future for its result. Fails without
// blocking when the pool is closed, its context is cancelled, or the queue
// is full.
func (pool *TaskPool[T]) Submit(task func() (T, error)) (*types.Future[T], error) {
	pool.mutex.RLock()
	defer pool.mutex.RUnlock()

	if pool.isClosed {
		return nil, errors.New("TaskPool.Submit ERROR: cannot submit to a closed pool")
	}
	if err := pool.ctx.Err(); err != nil {
		return nil, fmt.Errorf("TaskPool.Submit ERROR: pool context is done: %w", err)
	}

	future := types.NewFuture[T]()
	select {
	case pool.tasks <- poolTask[T]{run: task, future: future}:
		return future, nil
	default:
		return nil, errors.New("TaskPool.Submit ERROR: task queue is full")
	}
}

// Close stops intake, lets queued tasks finish and waits for the workers.
// Idempotent.
func (pool *TaskPool[T]) Close() {
	pool.mutex.Lock()
	if pool.isClosed {
		pool.mutex.Unlock()
		return
	}
	pool.isClosed = true
	close(pool.tasks)
	pool.mutex.Unlock()

	pool.wg.Wait()
}

func (pool *TaskPool[T]) worker() {
	defer pool.wg.Done()

	for {
		select {
		case <-pool.ctx.Done():
			return
		case task, ok := <-pool.tasks:
			if !ok {
				return
			}
			task.future.Complete(pool.runSafely(task.run))
		}
	}
}

func (pool *TaskPool[T]) runSafely(run func() (T, error)) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("TaskPool.worker ERROR: task panicked: %v", recovered)
		}
	}()

	return run()
}
