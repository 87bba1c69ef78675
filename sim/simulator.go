// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mmk-sim/sim/trace"
)

// ErrSimulationFinished is returned by Run on a simulator that already ran.
var ErrSimulationFinished = errors.New("simulation already finished")

// RunState is the lifecycle state of a Simulator.
type RunState int

const (
	// Running: events are still being processed.
	Running RunState = iota
	// Finished: the departure target was reached.
	Finished
)

func (s RunState) String() string {
	if s == Finished {
		return "finished"
	}
	return "running"
}

// EventObserver receives one record per processed event.
// *trace.SimulationTrace implements it.
type EventObserver interface {
	OnEvent(rec trace.EventRecord)
}

// Simulator is the control loop: it pops the earliest event, feeds it to the
// QueueingSystem, schedules the resulting departure, and regenerates the
// next arrival, until the target number of departures has been processed.
type Simulator struct {
	Config SimConfig
	// EventQueue has all pending arrival and departure events
	EventQueue *EventQueue
	System     *QueueingSystem
	RNG        *PartitionedRNG
	State      RunState

	// Departures processed so far
	Departures int64
	// id given to the most recently generated arrival
	lastCustomerID int64

	arrivals VariateSource
	observer EventObserver
}

// NewSimulator validates cfg and wires a fresh system, event queue and
// variate streams. Nothing is shared between simulators.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(cfg.Seed, cfg.RNG)
	system, err := NewQueueingSystem(cfg.Capacity, cfg.ServiceRate,
		rng.ForSubsystem(SubsystemService), rng.ForSubsystem(SubsystemAdmission))
	if err != nil {
		return nil, err
	}
	return &Simulator{
		Config:     cfg,
		EventQueue: NewEventQueue(),
		System:     system,
		RNG:        rng,
		State:      Running,
		arrivals:   rng.ForSubsystem(SubsystemArrival),
	}, nil
}

// SetObserver installs an observer that sees every processed event.
func (sim *Simulator) SetObserver(o EventObserver) {
	sim.observer = o
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(e Event) {
	sim.EventQueue.Insert(e)
}

// scheduleNextArrival generates the next arrival one exponential
// inter-arrival time after the system clock.
func (sim *Simulator) scheduleNextArrival() {
	sim.lastCustomerID++
	t := sim.System.Clock + sim.arrivals.Exponential(sim.Config.ArrivalRate)
	sim.Schedule(mustEvent(Arrival, t, sim.lastCustomerID))
}

// Run processes events until Config.Departures departures have been seen and
// returns the run summary. Blocked arrivals are logged and dropped. Empty
// queue and malformed event errors are fatal and returned; invariant
// violations panic out of the state machine.
func (sim *Simulator) Run() (RunSummary, error) {
	if sim.State == Finished {
		return RunSummary{}, ErrSimulationFinished
	}

	logrus.Infof("Starting simulation: K=%d m=%d mu=%v lambda=%v departures=%d",
		sim.Config.Capacity, sim.Config.Servers, sim.Config.ServiceRate, sim.Config.ArrivalRate, sim.Config.Departures)

	if sim.EventQueue.Len() == 0 && sim.lastCustomerID == 0 {
		sim.scheduleNextArrival()
	}

	for sim.Departures < sim.Config.Departures {
		if err := sim.Step(); err != nil {
			return RunSummary{}, err
		}
	}

	sim.State = Finished
	logrus.Infof("[t=%.3f] Simulation ended after %d departures, %d blocked",
		sim.System.Clock, sim.Departures, sim.System.Metrics.Blocked)
	return sim.Summary(), nil
}

// Step processes exactly one event.
func (sim *Simulator) Step() error {
	ev, err := sim.EventQueue.PopEarliest()
	if err != nil {
		return fmt.Errorf("step after %d departures: %w", sim.Departures, err)
	}

	if ev.Kind == Departure {
		sim.Departures++
	}

	out, err := sim.System.ProcessEvent(ev)
	if err != nil {
		return err
	}

	sim.record(ev, out)

	if out.Admission == Blocked {
		logrus.Debugf("%s blocked: %d customers in system", ev, sim.System.CustomerCount())
	}
	if out.Departure != nil {
		sim.Schedule(*out.Departure)
	}
	if ev.Kind == Arrival {
		sim.scheduleNextArrival()
	}
	return nil
}

func (sim *Simulator) record(ev Event, out Outcome) {
	rec := trace.EventRecord{
		Kind:          ev.Kind.String(),
		CustomerID:    ev.CustomerID,
		Time:          ev.Time,
		Blocked:       out.Admission == Blocked,
		CustomerCount: sim.System.CustomerCount(),
	}
	if ev.Kind == Departure {
		rec.Departures = sim.Departures
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debug(rec.String())
	}
	if sim.observer != nil {
		sim.observer.OnEvent(rec)
	}
}

// Summary reports the statistics accumulated so far.
func (sim *Simulator) Summary() RunSummary {
	s := sim.System.Metrics.Summarize(sim.System.Clock, sim.Departures, sim.System.Servers())
	s.Capacity = sim.Config.Capacity
	s.Servers = sim.System.Servers()
	s.ServiceRate = sim.Config.ServiceRate
	s.ArrivalRate = sim.Config.ArrivalRate
	return s
}
