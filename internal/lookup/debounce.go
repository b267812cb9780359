package lookup

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a typed query is sent.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer collapses a burst of Trigger calls into one call of fn with the
// latest value, made once wait has passed without a new trigger.
type Debouncer[V any] struct {
	wait time.Duration
	fn   func(V)

	mu      sync.Mutex
	timer   *time.Timer
	latest  V
	stopped bool
}

// NewDebouncer creates a debouncer. wait <= 0 means DefaultDebounce.
func NewDebouncer[V any](wait time.Duration, fn func(V)) *Debouncer[V] {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer[V]{wait: wait, fn: fn}
}

// Trigger records v and restarts the quiet period.
func (d *Debouncer[V]) Trigger(v V) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fire)
}

func (d *Debouncer[V]) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.timer = nil
	d.mu.Unlock()
	d.fn(v)
}

// Stop drops any pending call. Later triggers are ignored.
func (d *Debouncer[V]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
