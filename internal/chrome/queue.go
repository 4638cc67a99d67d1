package chrome

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO event mailbox. Producers on any goroutine
// enqueue without blocking; a single consumer drains events in strict
// arrival order. Enqueue is the only synchronization point between the
// UI/engine callbacks and the dispatcher.
type Queue struct {
	mu     sync.Mutex
	events []Event
	wake   chan struct{}
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Enqueue appends an event. It never blocks, regardless of consumer state.
func (q *Queue) Enqueue(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Next returns the oldest queued event, blocking until one is available
// or the context is cancelled. The second return is false only on
// cancellation. Next must be called from a single consumer goroutine.
func (q *Queue) Next(ctx context.Context) (Event, bool) {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			ev := q.events[0]
			q.events = q.events[1:]
			q.mu.Unlock()
			return ev, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, false
		case <-q.wake:
		}
	}
}

// Len reports the number of events waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
