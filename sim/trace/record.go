// Package trace provides per-event trace recording for queue simulations.
// This package has no dependencies on sim/. It stores pure data types.
package trace

import "fmt"

// EventRecord captures one processed event.
type EventRecord struct {
	Kind          string  // "a" for arrivals, "d" for departures
	CustomerID    int64   // customer the event belongs to
	Time          float64 // logical time of the event
	Departures    int64   // running departure count; 0 for arrivals
	Blocked       bool    // arrival rejected at admission
	CustomerCount int     // customers in the system after the event
}

// IsDeparture reports whether the record is a departure.
func (r EventRecord) IsDeparture() bool {
	return r.Kind == "d"
}

// String renders the trace line: kind, zero-padded customer id, time to
// 3 decimals, and the running departure count for departures.
func (r EventRecord) String() string {
	line := fmt.Sprintf("%s(%06d): %.3f", r.Kind, r.CustomerID, r.Time)
	switch {
	case r.IsDeparture():
		line += fmt.Sprintf(" [%d]", r.Departures)
	case r.Blocked:
		line += " blocked"
	}
	return line
}
