package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroker_FanOut(t *testing.T) {
	b := newBroker(4)

	first, cancelFirst := b.subscribe()
	second, cancelSecond := b.subscribe()
	defer cancelFirst()
	defer cancelSecond()

	b.publish(Event{Op: OpCreate, ID: "a"})

	assert.Equal(t, "a", (<-first).ID)
	assert.Equal(t, "a", (<-second).ID)
}

func TestBroker_DropsWhenBufferFull(t *testing.T) {
	b := newBroker(1)

	ch, cancel := b.subscribe()
	defer cancel()

	b.publish(Event{ID: "first"})
	b.publish(Event{ID: "dropped"})

	assert.Equal(t, "first", (<-ch).ID)
	assert.Equal(t, uint64(1), b.droppedCount())

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %v", ev)
	default:
	}
}

func TestBroker_CancelClosesAndUnsubscribes(t *testing.T) {
	b := newBroker(1)

	ch, cancel := b.subscribe()
	assert.Equal(t, 1, b.subscriberCount())

	cancel()
	cancel() // safe to call twice

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.subscriberCount())

	// Publishing after cancel must not panic.
	b.publish(Event{ID: "late"})
}
