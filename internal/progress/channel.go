package progress

import (
	"context"
	"sync"
)

// Channel broadcasts the latest value from one producer to one consumer.
// Publish never blocks. Wait returns each published version at most once.
type Channel[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	seen    uint64
	closed  bool
	changed chan struct{} // closed and replaced on every publish
}

// NewChannel creates a channel holding initial. The initial value counts as
// already observed, so the first Wait blocks until something is published.
func NewChannel[T any](initial T) *Channel[T] {
	return &Channel[T]{
		value:   initial,
		changed: make(chan struct{}),
	}
}

// Publish overwrites the pending value and wakes the consumer.
// Publishing after Close is a no-op.
func (c *Channel[T]) Publish(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.value = value
	c.version++
	close(c.changed)
	c.changed = make(chan struct{})
}

// Close marks the producer as finished. It is safe to call more than once.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.changed)
}

// Wait blocks until a value newer than the last observed one is available and
// returns it with ok=true. An unobserved value is delivered even after Close.
// Once the channel is closed and drained, or ctx is done, it returns ok=false.
func (c *Channel[T]) Wait(ctx context.Context) (T, bool) {
	for {
		c.mu.Lock()
		if c.version != c.seen {
			c.seen = c.version
			value := c.value
			c.mu.Unlock()
			return value, true
		}
		if c.closed {
			c.mu.Unlock()
			var zero T
			return zero, false
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}
