package domain

import "sync"

// eventQueue is the unbounded multi-producer, single-consumer buffer shared by
// a multiplexer's workers. Producers never block.
type eventQueue struct {
	mu     sync.Mutex
	items  []StreamEvent
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		notify: make(chan struct{}, 1),
	}
}

// push appends ev and wakes the consumer.
func (q *eventQueue) push(ev StreamEvent) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// ready fires when at least one push happened since the last drain.
func (q *eventQueue) ready() <-chan struct{} {
	return q.notify
}

// drain removes and returns everything buffered so far, in push order.
func (q *eventQueue) drain() []StreamEvent {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}
