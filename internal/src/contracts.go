package src

import (
	"context"
	"time"
)

// IEntryNode defines a store node holding one fetched value and its access
// statistics.
// GetData returns the stored value and counts the read.
// SetData replaces the value, counts the write and refreshes the fetch time.
// GetMetrics returns the fetch timestamp, the read count and the write count.
// Clear resets the node to its zero state.
type IEntryNode[T any] interface {
	GetData() T
	SetData(data T)
	GetMetrics() (time.Time, uint32, uint32)
	Clear()
}

// IStore defines the in-memory key/value store backing a mock client.
// Set stores or replaces a value and returns an error if the store is closed.
// Get returns the value for a key and whether the key exists.
// Delete removes a key; deleting an absent key is a no-op.
// Clear removes every entry but leaves the store usable.
// Close marks the store closed; every later operation fails or returns empty.
// Len returns the number of stored entries.
// Range iterates entries until the callback returns false.
// GetEntryMetrics returns the per-entry statistics for a key.
type IStore[T any] interface {
	Set(key string, value T) error
	Get(key string) (T, bool)
	Delete(key string)
	Clear()
	Close()

	Len() int
	Range(func(key string, value T) bool) error
	GetEntryMetrics(key string) (time.Time, uint32, uint32, bool)
}

// IBatchFetcher is the slice of a mock client a batch loader needs.
type IBatchFetcher[T any] interface {
	BatchFetch(ctx context.Context, keys []string) (map[string]T, error)
}
