package src

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ResourceRegistry owns a set of named disposable resources (timers,
// subscriptions, debouncers) and releases them deterministically. It replaces
// the process-wide mutable map the leak demonstration misuses: every consumer
// gets its own injectable registry, so tests can isolate instances.
type ResourceRegistry struct {
	sync.Mutex
	resources map[string]func()
	order     []string
	isClosed  bool
	logger    *zap.Logger
}

// NewResourceRegistry creates an empty registry.
func NewResourceRegistry(logger *zap.Logger) *ResourceRegistry {
	registry := &ResourceRegistry{}
	registry.resources = make(map[string]func())
	registry.logger = logger

	if logger == nil {
		registry.logger = zap.NewNop()
	}

	return registry
}

// Register stores dispose under name. Duplicate names and closed registries
// are programming errors and fail fast.
func (registry *ResourceRegistry) Register(name string, dispose func()) error {
	registry.Lock()
	defer registry.Unlock()

	if registry.isClosed {
		registry.logger.Warn("ResourceRegistry.Register called after Close", zap.String("name", name))
		return fmt.Errorf("ResourceRegistry.Register ERROR: cannot register %q on a closed registry", name)
	}
	if _, ok := registry.resources[name]; ok {
		return fmt.Errorf("ResourceRegistry.Register ERROR: resource %q is already registered", name)
	}
	if dispose == nil {
		return fmt.Errorf("ResourceRegistry.Register ERROR: resource %q has no dispose function", name)
	}

	registry.resources[name] = dispose
	registry.order = append(registry.order, name)

	return nil
}

// Release disposes one resource and forgets it. Unknown names are a no-op.
func (registry *ResourceRegistry) Release(name string) {
	registry.Lock()
	dispose, ok := registry.resources[name]
	if ok {
		delete(registry.resources, name)
	}
	registry.Unlock()

	if ok {
		dispose()
	}
}

// Len returns the number of live resources.
func (registry *ResourceRegistry) Len() int {
	registry.Lock()
	defer registry.Unlock()

	return len(registry.resources)
}

// Close disposes every live resource in reverse registration order.
// Idempotent; resources released earlier are skipped.
func (registry *ResourceRegistry) Close() {
	registry.Lock()
	if registry.isClosed {
		registry.Unlock()
		return
	}
	registry.isClosed = true

	disposers := make([]func(), 0, len(registry.resources))
	for i := len(registry.order) - 1; i >= 0; i-- {
		name := registry.order[i]
		if dispose, ok := registry.resources[name]; ok {
			disposers = append(disposers, dispose)
			delete(registry.resources, name)
		}
	}
	registry.order = nil
	registry.Unlock()

	for _, dispose := range disposers {
		dispose()
	}
}
