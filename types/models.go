package types

import (
	"context"
	"sync"
	"time"
)

// CacheMetrics is a point-in-time snapshot of a mock client's counters.
// RequestCount and CacheHitCount are monotonically non-decreasing until an
// explicit Reset; CachedKeyCount reflects the current store size.
type CacheMetrics struct {
	RequestCount   uint64
	CacheHitCount  uint64
	CachedKeyCount int
}

// EntryMetric describes a single cached entry together with its access
// statistics. Exists is false when the key was never stored.
type EntryMetric[T any] struct {
	Key       string
	Value     T
	GetCount  uint32
	SetCount  uint32
	FetchedAt time.Time
	Exists    bool
}

// Payload is the default value produced by a simulated fetch: an opaque body
// derived from the key, tagged with a per-request ID and a fetch timestamp.
type Payload struct {
	Key       string
	RequestID string
	Body      string
	FetchedAt time.Time
}

// Future holds the eventual result of a task submitted to a pool. It is
// completed exactly once by the worker that ran the task.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture creates an unresolved Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Complete resolves the future with a value or an error. Only the first call
// has any effect.
func (future *Future[T]) Complete(value T, err error) {
	future.once.Do(func() {
		future.value = value
		future.err = err
		close(future.done)
	})
}

// Done returns a channel closed when the future is resolved.
func (future *Future[T]) Done() <-chan struct{} {
	return future.done
}

// Wait blocks until the future is resolved or ctx is cancelled.
func (future *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-future.done:
		return future.value, future.err
	case <-ctx.Done():
		return *new(T), ctx.Err()
	}
}
