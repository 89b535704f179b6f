package core

import "sync"

// broker fans change events out to subscribers. Publishing never blocks a
// writer: when a subscriber's buffer is full, the event is dropped for that
// subscriber and counted.
type broker struct {
	mu      sync.Mutex
	subs    map[int]chan Event
	nextID  int
	bufSize int
	dropped uint64
}

func newBroker(bufSize int) *broker {
	if bufSize <= 0 {
		bufSize = defaultEventBuffer
	}
	return &broker{
		subs:    make(map[int]chan Event),
		bufSize: bufSize,
	}
}

// subscribe registers a new subscriber channel. The returned cancel function
// unregisters it and closes the channel; it is safe to call more than once.
func (b *broker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.bufSize)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped++
		}
	}
}

func (b *broker) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *broker) droppedCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
