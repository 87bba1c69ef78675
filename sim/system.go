package sim

import (
	"errors"
	"fmt"
)

// DefaultServers is the number of servers usable once the system holds at
// least Capacity customers.
const DefaultServers = 2

// admissionThreshold is the minimum admission draw that lets an arrival
// in while the system is between K and 2K customers.
const admissionThreshold = 0.5

// ErrTimeWentBackwards is returned when an event is older than the clock.
var ErrTimeWentBackwards = errors.New("event time precedes system clock")

// AdmissionResult is the outcome of offering an event to the admission gate.
type AdmissionResult int

const (
	// NotApplicable is reported for departures.
	NotApplicable AdmissionResult = iota
	// Admitted means the arrival joined the waiting queue.
	Admitted
	// Blocked means the arrival was rejected and dropped.
	Blocked
)

func (r AdmissionResult) String() string {
	switch r {
	case Admitted:
		return "admitted"
	case Blocked:
		return "blocked"
	default:
		return "n/a"
	}
}

// Outcome is what ProcessEvent reports back to the driver.
type Outcome struct {
	Admission AdmissionResult
	// Departure is the departure scheduled by a service start, or nil.
	Departure *Event
}

// InvariantViolation is the panic value raised when the idle-server bound
// 0 <= idle <= usable breaks. It indicates a state machine defect.
type InvariantViolation struct {
	Clock    float64
	Busy     int
	Usable   int
	Customer int
	Detail   string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation at t=%.6f: %s (busy=%d usable=%d customers=%d)",
		v.Clock, v.Detail, v.Busy, v.Usable, v.Customer)
}

// QueueingSystem is the state machine of the finite-capacity queue.
// It holds the waiting arrivals, the busy server count, and the
// accumulators, and applies one event at a time.
//
// Thread-safety: NOT thread-safe. Owned by a single Simulator.
type QueueingSystem struct {
	capacity    int
	servers     int
	serviceRate float64

	// Clock is the time of the last processed event.
	Clock float64
	// WaitQ holds admitted arrivals that have not started service, FIFO.
	WaitQ []Event
	busy  int

	service   VariateSource
	admission VariateSource

	Metrics *Accumulators
}

// NewQueueingSystem creates an empty system. service draws service
// durations; admission draws the coin flip above capacity.
func NewQueueingSystem(capacity int, serviceRate float64, service, admission VariateSource) (*QueueingSystem, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("%w: capacity must be >= 2, got %d", ErrInvalidConfiguration, capacity)
	}
	if !(serviceRate > 0) || isInf(serviceRate) {
		return nil, fmt.Errorf("%w: service rate must be > 0, got %v", ErrInvalidConfiguration, serviceRate)
	}
	if service == nil || admission == nil {
		return nil, fmt.Errorf("%w: variate sources must not be nil", ErrInvalidConfiguration)
	}
	return &QueueingSystem{
		capacity:    capacity,
		servers:     DefaultServers,
		serviceRate: serviceRate,
		WaitQ:       make([]Event, 0),
		service:     service,
		admission:   admission,
		Metrics:     &Accumulators{},
	}, nil
}

// Capacity returns K.
func (qs *QueueingSystem) Capacity() int { return qs.capacity }

// Servers returns m.
func (qs *QueueingSystem) Servers() int { return qs.servers }

// BusyServers returns the number of servers currently serving a customer.
func (qs *QueueingSystem) BusyServers() int { return qs.busy }

// CustomerCount returns waiting plus in-service customers.
func (qs *QueueingSystem) CustomerCount() int {
	return len(qs.WaitQ) + qs.busy
}

// UsableServers returns how many servers may be busy at the current
// customer count: 1 below K, m up to 2K, and 0 past 2K, which admission
// makes unreachable.
func (qs *QueueingSystem) UsableServers() int {
	return usableServers(qs.CustomerCount(), qs.capacity, qs.servers)
}

func usableServers(count, capacity, servers int) int {
	switch {
	case count < capacity:
		return 1
	case count <= 2*capacity:
		return servers
	default:
		return 0
	}
}

// IdleServers returns usable minus busy servers. It may be negative only
// when the state machine is broken; checkInvariant catches that.
func (qs *QueueingSystem) IdleServers() int {
	return qs.UsableServers() - qs.busy
}

// ProcessEvent applies e to the system and returns the admission result and
// any departure scheduled by a service start.
//
// At most one waiting customer enters service per call, even when more than
// one server is idle.
//
// Blocking is reported through Outcome, not as an error, and a blocked
// arrival leaves the queue and servers untouched. The returned error
// is reserved for malformed input. A broken idle-server bound panics with
// *InvariantViolation.
func (qs *QueueingSystem) ProcessEvent(e Event) (Outcome, error) {
	if !e.Kind.Valid() {
		return Outcome{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidEvent, int(e.Kind))
	}
	if e.Time < qs.Clock {
		return Outcome{}, fmt.Errorf("%w: event %s at clock %.6f", ErrTimeWentBackwards, e, qs.Clock)
	}

	qs.Metrics.Area += float64(qs.CustomerCount()) * (e.Time - qs.Clock)
	qs.Clock = e.Time

	var out Outcome
	switch e.Kind {
	case Arrival:
		qs.Metrics.Arrivals++
		if qs.admit() {
			qs.WaitQ = append(qs.WaitQ, e)
			out.Admission = Admitted
		} else {
			// A blocked arrival is dropped and starts no service.
			qs.Metrics.Blocked++
			out.Admission = Blocked
			qs.checkInvariant()
			return out, nil
		}
	case Departure:
		if qs.busy == 0 {
			qs.violate("departure with no busy server")
		}
		qs.busy--
	}

	if qs.CustomerCount() > 0 && qs.IdleServers() > 0 && len(qs.WaitQ) > 0 {
		d := qs.startService()
		out.Departure = &d
	}

	qs.checkInvariant()
	return out, nil
}

// admit decides whether an arrival joins the queue. The admission stream is
// drawn only between K and 2K customers.
func (qs *QueueingSystem) admit() bool {
	n := qs.CustomerCount()
	switch {
	case n < qs.capacity:
		return true
	case n < 2*qs.capacity:
		return qs.admission.Uniform() >= admissionThreshold
	default:
		return false
	}
}

// startService moves the head of WaitQ onto a server and returns its departure.
func (qs *QueueingSystem) startService() Event {
	arrival := qs.WaitQ[0]
	qs.WaitQ = qs.WaitQ[1:]

	duration := qs.service.Exponential(qs.serviceRate)
	sojourn := qs.Clock - arrival.Time + duration

	qs.Metrics.OperationTime += duration
	qs.Metrics.LastSojourn = sojourn
	qs.Metrics.SojournSum += sojourn
	qs.Metrics.Served++
	qs.busy++

	return mustEvent(Departure, qs.Clock+duration, arrival.CustomerID)
}

func (qs *QueueingSystem) checkInvariant() {
	usable := qs.UsableServers()
	idle := usable - qs.busy
	if idle < 0 || idle > usable {
		qs.violate(fmt.Sprintf("idle servers %d outside [0, %d]", idle, usable))
	}
}

func (qs *QueueingSystem) violate(detail string) {
	panic(&InvariantViolation{
		Clock:    qs.Clock,
		Busy:     qs.busy,
		Usable:   qs.UsableServers(),
		Customer: qs.CustomerCount(),
		Detail:   detail,
	})
}
