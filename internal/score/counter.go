// Package score holds the round score and notifies observers on change.
package score

import "sync"

// ChangeFunc observes a score change.
type ChangeFunc func(oldValue, newValue int)

// Counter is a concurrency-safe score with synchronous change notification.
// Handlers run on the caller's goroutine after the counter's lock is released.
type Counter struct {
	mu       sync.Mutex
	value    int
	handlers []ChangeFunc
}

// NewCounter creates a counter at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Subscribe registers a handler for every subsequent change.
func (c *Counter) Subscribe(fn ChangeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

// Value returns the current score.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Increment adds one and returns the new value.
func (c *Counter) Increment() int {
	return c.set(func(v int) int { return v + 1 })
}

// Reset sets the score back to zero. No notification is sent if it already was.
func (c *Counter) Reset() {
	c.set(func(int) int { return 0 })
}

func (c *Counter) set(next func(int) int) int {
	c.mu.Lock()
	old := c.value
	c.value = next(old)
	nv := c.value
	handlers := append([]ChangeFunc(nil), c.handlers...)
	c.mu.Unlock()

	if nv != old {
		for _, fn := range handlers {
			fn(old, nv)
		}
	}
	return nv
}
