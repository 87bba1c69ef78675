package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every processed event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	Limit int // maximum records kept; 0 means unlimited
}

// SimulationTrace collects event records during a simulation run.
type SimulationTrace struct {
	Config  TraceConfig
	Events  []EventRecord
	Dropped int // records discarded once Limit was reached
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// OnEvent appends an event record. Records past Limit are counted in
// Dropped; nothing is recorded when the level is none.
func (st *SimulationTrace) OnEvent(record EventRecord) {
	if st.Config.Level != TraceLevelEvents {
		return
	}
	if st.Config.Limit > 0 && len(st.Events) >= st.Config.Limit {
		st.Dropped++
		return
	}
	st.Events = append(st.Events, record)
}
