// Package coalesce limits how often bursts of events reach their consumer.
package coalesce

import (
	"sync"
	"time"
)

// Coalescer delivers at most one value per window to its callback.
// The first Add of a burst opens the window; later Adds in the same window
// replace the pending value. The last value added is always delivered.
type Coalescer[T any] struct {
	mu       sync.Mutex
	deliver  sync.Mutex
	pending  T
	has      bool
	timer    *time.Timer
	window   time.Duration
	callback func(T)
}

// New creates a coalescer with the given window and callback.
func New[T any](window time.Duration, callback func(T)) *Coalescer[T] {
	return &Coalescer[T]{
		window:   window,
		callback: callback,
	}
}

// Add records v as the latest value and opens a window if none is open.
func (c *Coalescer[T]) Add(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = v
	c.has = true

	if c.timer == nil {
		c.timer = time.AfterFunc(c.window, c.fire)
	}
}

// fire is called when the window closes.
func (c *Coalescer[T]) fire() {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	v, ok := c.take()
	c.timer = nil
	c.mu.Unlock()

	if ok && c.callback != nil {
		c.callback(v)
	}
}

// Flush delivers the pending value immediately and closes the open window.
// It blocks until the callback returns.
func (c *Coalescer[T]) Flush() {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	v, ok := c.take()
	c.mu.Unlock()

	if ok && c.callback != nil {
		c.callback(v)
	}
}

// Stop discards the pending value and closes the open window.
func (c *Coalescer[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.take()
}

// take must be called with mu held.
func (c *Coalescer[T]) take() (T, bool) {
	var zero T
	if !c.has {
		return zero, false
	}
	v := c.pending
	c.pending = zero
	c.has = false
	return v, true
}
