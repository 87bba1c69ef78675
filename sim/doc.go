// Package sim provides the discrete-event simulation engine for a
// finite-capacity two-server Markovian queue.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Arrival and Departure events and their trace rendering
//   - system.go: the queueing state machine (admission, server count, service starts)
//   - simulator.go: the event loop that drives the state machine
//
// # Model
//
// Below capacity K one server is usable; from K to 2K customers both servers
// are usable. Arrivals below K are always admitted, arrivals between K and 2K
// are admitted on a fair coin flip, and arrivals at 2K are always blocked.
// A processed event starts service for at most one waiting customer.
//
// # Randomness
//
// Variates come from a PartitionedRNG that owns one VariateSource per
// subsystem (arrival, service, admission). There is no package-level
// generator state, so runs are reproducible and independent.
//
// Sub-packages:
//   - sim/trace/: per-event trace recording
//   - sim/sweep/: offered-load sweeps over fresh simulators
//   - sim/analytic/: birth-death steady-state approximation for comparison
package sim
