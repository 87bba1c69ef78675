package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents  int
	Arrivals     int
	Departures   int
	BlockedCount int
	MaxCustomers int
	LastTime     float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		if e.IsDeparture() {
			summary.Departures++
		} else {
			summary.Arrivals++
			if e.Blocked {
				summary.BlockedCount++
			}
		}
		if e.CustomerCount > summary.MaxCustomers {
			summary.MaxCustomers = e.CustomerCount
		}
		if e.Time > summary.LastTime {
			summary.LastTime = e.Time
		}
	}

	return summary
}
