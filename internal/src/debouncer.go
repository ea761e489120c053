package src

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultDebounceDelay = 100 * time.Millisecond

// Debouncer coalesces a rapid sequence of triggers into at most one callback
// execution, fired once the triggers have been quiet for the configured
// delay. Each trigger replaces the previously scheduled callback, so for any
// burst only the last callback runs.
type Debouncer struct {
	sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	isDisposed bool
	logger     *zap.Logger
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay is normalized to a small default.
func NewDebouncer(delay time.Duration, logger *zap.Logger) *Debouncer {
	debouncer := &Debouncer{}
	debouncer.delay = delay
	debouncer.logger = logger

	if delay <= 0 {
		debouncer.delay = defaultDebounceDelay
	}
	if logger == nil {
		debouncer.logger = zap.NewNop()
	}

	return debouncer
}

// Trigger cancels any pending callback and schedules callback to run after
// the quiet period. Triggering a disposed debouncer is a programming error
// and returns an error instead of scheduling anything.
func (debouncer *Debouncer) Trigger(callback func()) error {
	debouncer.Lock()
	defer debouncer.Unlock()

	if debouncer.isDisposed {
		debouncer.logger.Warn("Debouncer.Trigger called after Dispose")
		return errors.New("Debouncer.Trigger ERROR: cannot trigger a disposed debouncer")
	}

	debouncer.generation++
	generation := debouncer.generation

	if debouncer.timer != nil {
		debouncer.timer.Stop()
	}

	debouncer.timer = time.AfterFunc(debouncer.delay, func() {
		debouncer.Lock()
		// A stopped timer may already be in flight; the generation check
		// makes such a stale firing a no-op.
		if debouncer.isDisposed || generation != debouncer.generation {
			debouncer.Unlock()
			return
		}
		debouncer.timer = nil
		debouncer.Unlock()

		callback()
	})

	return nil
}

// Dispose cancels any pending callback. It is idempotent and safe to call
// from within the pending callback itself.
func (debouncer *Debouncer) Dispose() {
	debouncer.Lock()
	defer debouncer.Unlock()

	if debouncer.isDisposed {
		return
	}

	debouncer.isDisposed = true
	if debouncer.timer != nil {
		debouncer.timer.Stop()
		debouncer.timer = nil
	}
}
