package pubsub

import "sync"

// Cell is an observable value holder. It supports synchronous reads of the
// current value, and its subscription channel replays the latest value to
// every new subscriber before delivering subsequent writes.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	b     *Broadcaster[T]
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, b: NewBroadcaster[T]()}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v as the current value and pushes it to all subscribers.
func (c *Cell[T]) Set(v T) {
	// Publishing under the same lock keeps the store and the push atomic with
	// respect to Subscribe, so a new subscriber never sees a value twice.
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.b.Publish(v)
}

// Subscribe registers a subscriber. The current value is already queued on
// the returned channel.
func (c *Cell[T]) Subscribe() (<-chan T, CancelFunc) {
	// Hold the lock across registration so a concurrent Set cannot slip in
	// between the replay and the subscription.
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.value
	return c.b.subscribe(&v)
}

// Close closes the underlying broadcaster.
func (c *Cell[T]) Close() {
	c.b.Close()
}
