package sim

import "fmt"

// scriptedSource is a VariateSource that replays fixed draws. Running out of
// draws panics, which makes any unexpected draw visible in a test.
type scriptedSource struct {
	uniforms     []float64
	exponentials []float64
	uniformCalls int
	expCalls     int
}

func (s *scriptedSource) Uniform() float64 {
	if s.uniformCalls >= len(s.uniforms) {
		panic(fmt.Sprintf("scriptedSource: unexpected uniform draw #%d", s.uniformCalls+1))
	}
	u := s.uniforms[s.uniformCalls]
	s.uniformCalls++
	return u
}

func (s *scriptedSource) Exponential(_ float64) float64 {
	if s.expCalls >= len(s.exponentials) {
		panic(fmt.Sprintf("scriptedSource: unexpected exponential draw #%d", s.expCalls+1))
	}
	d := s.exponentials[s.expCalls]
	s.expCalls++
	return d
}

// newTestSystem builds a QueueingSystem with scripted service and admission draws.
func newTestSystem(capacity int, service, admission *scriptedSource) *QueueingSystem {
	qs, err := NewQueueingSystem(capacity, 3, service, admission)
	if err != nil {
		panic(err)
	}
	return qs
}

// fillWaiting puts n admitted arrivals straight into the waiting queue,
// bypassing admission and service starts.
func fillWaiting(qs *QueueingSystem, n int, at float64) {
	for i := 0; i < n; i++ {
		qs.WaitQ = append(qs.WaitQ, mustEvent(Arrival, at, int64(1000+i)))
	}
}
