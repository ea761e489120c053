package src

import (
	"sync/atomic"
	"time"
)

// EntryNode is a store node for one fetched value. It tracks when the value
// was last stored and how many times it was read and written.
type EntryNode[T any] struct {
	data      T
	fetchedAt time.Time
	getCount  uint32
	setCount  uint32
}

// NewEntryNode creates a node holding data, stamped with the current time.
func NewEntryNode[T any](data T) IEntryNode[T] {
	node := &EntryNode[T]{}
	node.data = data
	node.fetchedAt = time.Now()
	node.setCount = 1
	return node
}

// GetData returns the stored value and increments the read counter.
func (node *EntryNode[T]) GetData() T {
	atomic.AddUint32(&node.getCount, 1)
	return node.data
}

// SetData replaces the stored value, increments the write counter and
// refreshes the fetch timestamp.
func (node *EntryNode[T]) SetData(data T) {
	node.data = data
	node.fetchedAt = time.Now()
	atomic.AddUint32(&node.setCount, 1)
}

// GetMetrics returns the fetch timestamp, read count and write count.
func (node *EntryNode[T]) GetMetrics() (time.Time, uint32, uint32) {
	return node.fetchedAt, atomic.LoadUint32(&node.getCount), atomic.LoadUint32(&node.setCount)
}

// Clear resets the node to its zero state.
func (node *EntryNode[T]) Clear() {
	node.data = *new(T)
	node.fetchedAt = time.Time{}
	atomic.StoreUint32(&node.getCount, 0)
	atomic.StoreUint32(&node.setCount, 0)
}
