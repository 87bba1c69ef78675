package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when popping from an empty EventQueue.
// In a running simulation it means the driver lost its next arrival.
var ErrEmptyQueue = errors.New("event queue is empty")

// queuedEvent pairs an event with its insertion sequence number.
type queuedEvent struct {
	event Event
	seq   uint64
}

// eventHeap implements heap.Interface.
// Ordering: time → insertion sequence.
type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Time != h[j].event.Time {
		return h[i].event.Time < h[j].event.Time
	}
	// Tie-break on insertion order so equal-time events pop FIFO.
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is the pending event set of a simulation, ordered by time with
// ties broken by insertion order.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Insert adds an event to the queue.
func (q *EventQueue) Insert(e Event) {
	heap.Push(&q.events, queuedEvent{event: e, seq: q.nextSeq})
	q.nextSeq++
}

// PopEarliest removes and returns the event with the smallest time.
func (q *EventQueue) PopEarliest() (Event, error) {
	if q.events.Len() == 0 {
		return Event{}, ErrEmptyQueue
	}
	return heap.Pop(&q.events).(queuedEvent).event, nil
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.events.Len() == 0 {
		return Event{}, false
	}
	return q.events[0].event, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}
