package src

import (
	"errors"
	"sync"
	"time"
)

// ConcurrentStore is a mutex-guarded map of entry nodes. It never evicts:
// entries live until Delete, Clear or Close.
type ConcurrentStore[T any] struct {
	sync.RWMutex
	data     map[string]IEntryNode[T]
	isClosed bool
}

// NewConcurrentStore creates an empty concurrent store.
func NewConcurrentStore[T any]() IStore[T] {
	store := &ConcurrentStore[T]{}
	store.data = make(map[string]IEntryNode[T])

	return store
}

func (store *ConcurrentStore[T]) Set(key string, value T) error {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return errors.New("ConcurrentStore.Set ERROR: cannot perform operation on closed store")
	}

	if node, ok := store.data[key]; ok {
		node.SetData(value)
	} else {
		store.data[key] = NewEntryNode[T](value)
	}

	return nil
}

func (store *ConcurrentStore[T]) Get(key string) (T, bool) {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return *new(T), false
	}

	if node, ok := store.data[key]; ok {
		return node.GetData(), true
	}

	return *new(T), false
}

func (store *ConcurrentStore[T]) Delete(key string) {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	if node, ok := store.data[key]; ok {
		node.Clear()
		delete(store.data, key)
	}
}

func (store *ConcurrentStore[T]) Clear() {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	for key, node := range store.data {
		node.Clear()
		delete(store.data, key)
	}
}

func (store *ConcurrentStore[T]) Close() {
	store.Lock()
	defer store.Unlock()

	if store.isClosed {
		return
	}

	store.isClosed = true
	for key, node := range store.data {
		node.Clear()
		delete(store.data, key)
	}
}

func (store *ConcurrentStore[T]) Len() int {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return 0
	}

	return len(store.data)
}

func (store *ConcurrentStore[T]) Range(callback func(key string, value T) bool) error {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return errors.New("ConcurrentStore.Range ERROR: cannot perform operation on closed store")
	}

	for key, node := range store.data {
		if !callback(key, node.GetData()) {
			return nil
		}
	}

	return nil
}

func (store *ConcurrentStore[T]) GetEntryMetrics(key string) (time.Time, uint32, uint32, bool) {
	store.RLock()
	defer store.RUnlock()

	if store.isClosed {
		return time.Time{}, 0, 0, false
	}

	if node, ok := store.data[key]; ok {
		fetchedAt, getCount, setCount := node.GetMetrics()
		return fetchedAt, getCount, setCount, true
	}

	return time.Time{}, 0, 0, false
}
