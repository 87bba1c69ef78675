// Tracks the time-weighted statistics of a run, updated event by event.

package sim

// Accumulators holds the running statistics of a QueueingSystem.
// Every field is updated incrementally inside ProcessEvent; nothing is
// recomputed from history.
type Accumulators struct {
	Area          float64 // integral of customer count over time
	OperationTime float64 // sum of drawn service durations
	Blocked       int64   // arrivals rejected at admission
	Arrivals      int64   // arrivals offered to the system
	LastSojourn   float64 // sojourn time of the most recently promoted customer
	SojournSum    float64 // sum of sojourn times over all promoted customers
	Served        int64   // customers that entered service
}

// RunSummary is the per-run report consumed by the sweep and the CLI.
type RunSummary struct {
	Capacity    int     `json:"capacity"`
	Servers     int     `json:"servers"`
	ServiceRate float64 `json:"service_rate"`
	ArrivalRate float64 `json:"arrival_rate"`
	Departures  int64   `json:"departures"`
	EndTime     float64 `json:"end_time"`

	AverageCustomers    float64 `json:"average_customers"`
	AverageSojournTime  float64 `json:"average_sojourn_time"`
	MeanSojournTime     float64 `json:"mean_sojourn_time"`
	BlockingProbability float64 `json:"blocking_probability"`
	Utilization         float64 `json:"utilization"`

	Arrivals int64 `json:"arrivals"`
	Blocked  int64 `json:"blocked"`
	Served   int64 `json:"served"`
}

// Summarize derives the run statistics at logical time clock after
// departures service completions on servers servers.
//
// AverageSojournTime is LastSojourn / departures: it keeps only the last
// customer's sojourn, as the reference program does. MeanSojournTime is
// the average over every customer that entered service.
// A zero clock or zero departures yields zeros instead of NaN.
func (a *Accumulators) Summarize(clock float64, departures int64, servers int) RunSummary {
	s := RunSummary{
		Departures: departures,
		EndTime:    clock,
		Arrivals:   a.Arrivals,
		Blocked:    a.Blocked,
		Served:     a.Served,
	}
	if clock > 0 {
		s.AverageCustomers = a.Area / clock
		if servers > 0 {
			s.Utilization = a.OperationTime / (clock * float64(servers))
		}
	}
	if departures > 0 {
		s.AverageSojournTime = a.LastSojourn / float64(departures)
		s.BlockingProbability = float64(a.Blocked) / float64(departures)
	}
	if a.Served > 0 {
		s.MeanSojournTime = a.SojournSum / float64(a.Served)
	}
	return s
}
