package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterFanOut(t *testing.T) {
	b := NewBroadcaster[int]()
	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	b.Publish(7)
	assert.Equal(t, 7, <-ch1)
	assert.Equal(t, 7, <-ch2)
}

func TestBroadcasterEvictsOldestWhenSubscriberFull(t *testing.T) {
	b := NewBroadcaster[int]()
	ch, cancel := b.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; the publisher must never block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish(i)
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// The oldest values were evicted; the most recent ones remain in order.
	for i := subscriberBuffer; i < subscriberBuffer*2; i++ {
		assert.Equal(t, i, <-ch)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected buffered value %d", v)
	default:
	}
}

func TestBroadcasterSizeOneKeepsLatest(t *testing.T) {
	b := NewBroadcasterSize[int](1)
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	assert.Equal(t, 3, <-ch, "a 1-deep subscriber sees only the latest value")
	select {
	case v := <-ch:
		t.Fatalf("unexpected buffered value %d", v)
	default:
	}
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster[string]()
	ch, cancel := b.Subscribe()
	cancel()
	cancel() // safe to call twice

	b.Publish("late")
	_, ok := <-ch
	assert.False(t, ok, "canceled subscriber's channel is closed")
}

func TestBroadcasterClose(t *testing.T) {
	b := NewBroadcaster[int]()
	ch, _ := b.Subscribe()
	b.Close()
	b.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// Subscribing after close yields a closed channel.
	late, cancel := b.Subscribe()
	defer cancel()
	_, ok = <-late
	assert.False(t, ok)

	b.Publish(1) // must not panic
}

func TestCellReplaysCurrentValue(t *testing.T) {
	c := NewCell(10)
	assert.Equal(t, 10, c.Get())

	c.Set(20)
	ch, cancel := c.Subscribe()
	defer cancel()

	assert.Equal(t, 20, <-ch, "subscribe replays the latest value")

	c.Set(30)
	assert.Equal(t, 30, <-ch)
	assert.Equal(t, 30, c.Get())
}

func TestCellMultipleSubscribers(t *testing.T) {
	c := NewCell("a")
	ch1, cancel1 := c.Subscribe()
	defer cancel1()

	c.Set("b")
	ch2, cancel2 := c.Subscribe()
	defer cancel2()

	require.Equal(t, "a", <-ch1)
	require.Equal(t, "b", <-ch1)
	require.Equal(t, "b", <-ch2, "late subscriber only sees the current value")
}
