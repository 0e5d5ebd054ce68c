// Package pubsub provides the event stream primitives used across capturekit:
// a multi-subscriber broadcaster with at-most-current delivery, and a
// current-value cell that replays its latest value to new subscribers.
package pubsub

import "sync"

const subscriberBuffer = 16

// CancelFunc detaches a subscriber and closes its channel. It is safe to call
// more than once.
type CancelFunc func()

// Broadcaster fans values out to any number of subscribers. Subscribers can
// come and go at any time. Delivery is non-blocking: when a subscriber's
// channel is full the oldest buffered value is evicted, so a slow subscriber
// always sees the most recent values and never slows down the publisher or
// the other subscribers.
type Broadcaster[T any] struct {
	buffer int

	mu     sync.Mutex
	subs   map[*subscriber[T]]struct{}
	closed bool
}

type subscriber[T any] struct {
	ch   chan T
	once sync.Once
}

// NewBroadcaster creates an empty broadcaster with the default per
// subscriber buffer.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return NewBroadcasterSize[T](subscriberBuffer)
}

// NewBroadcasterSize creates a broadcaster whose subscribers buffer at most
// size values. Size 1 gives latest-value-only delivery.
func NewBroadcasterSize[T any](size int) *Broadcaster[T] {
	if size < 1 {
		size = 1
	}
	return &Broadcaster[T]{buffer: size, subs: make(map[*subscriber[T]]struct{})}
}

// Subscribe registers a new subscriber and returns its receive channel. The
// channel is closed when the subscriber cancels or the broadcaster closes.
func (b *Broadcaster[T]) Subscribe() (<-chan T, CancelFunc) {
	return b.subscribe(nil)
}

// subscribe optionally queues seed on the new subscriber's channel before it
// can observe any published value.
func (b *Broadcaster[T]) subscribe(seed *T) (<-chan T, CancelFunc) {
	sub := &subscriber[T]{ch: make(chan T, b.buffer)}
	if seed != nil {
		sub.ch <- *seed
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
		return sub.ch, func() {}
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
	}
	return sub.ch, cancel
}

// Publish delivers v to every subscriber. A full subscriber loses its oldest
// buffered value so the latest always gets through.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for sub := range b.subs {
		select {
		case sub.ch <- v:
			continue
		default:
		}
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- v:
		default:
			// unreachable: eviction guaranteed room and b.mu serializes sends
		}
	}
}

// Close terminates the broadcaster and closes all subscriber channels.
// Publish and Subscribe become no-ops afterwards.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		sub.once.Do(func() { close(sub.ch) })
	}
}
