package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEvent is returned when an event is constructed with an unknown
// kind, a negative or non-finite time, or a customer id below 1.
var ErrInvalidEvent = errors.New("invalid event")

// EventKind tags an Event as an arrival or a departure.
type EventKind int

const (
	// Arrival is a customer entering the system.
	Arrival EventKind = iota + 1
	// Departure is a customer completing service and leaving.
	Departure
)

// String returns the single-letter trace tag of the kind.
func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "a"
	case Departure:
		return "d"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the two known kinds.
func (k EventKind) Valid() bool {
	return k == Arrival || k == Departure
}

// Event is an arrival or departure of one customer at a logical time.
// Events are values; nothing mutates them after construction.
type Event struct {
	Kind       EventKind
	Time       float64
	CustomerID int64
}

// NewEvent creates an Event, rejecting anything outside the data model.
func NewEvent(kind EventKind, time float64, customerID int64) (Event, error) {
	if !kind.Valid() {
		return Event{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidEvent, int(kind))
	}
	if time < 0 || math.IsNaN(time) || math.IsInf(time, 0) {
		return Event{}, fmt.Errorf("%w: time %v", ErrInvalidEvent, time)
	}
	if customerID < 1 {
		return Event{}, fmt.Errorf("%w: customer id %d", ErrInvalidEvent, customerID)
	}
	return Event{Kind: kind, Time: time, CustomerID: customerID}, nil
}

// mustEvent is NewEvent for callers whose arguments are already known good.
func mustEvent(kind EventKind, time float64, customerID int64) Event {
	e, err := NewEvent(kind, time, customerID)
	if err != nil {
		panic(err)
	}
	return e
}

// String renders the event as "a(000012): 3.142".
func (e Event) String() string {
	return fmt.Sprintf("%s(%06d): %.3f", e.Kind, e.CustomerID, e.Time)
}
