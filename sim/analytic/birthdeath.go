// Package analytic solves the birth-death chain that approximates the
// simulated queue, for comparing against simulated statistics.
//
// The chain treats service as state-dependent (min(n, usable(n)) servers busy
// in state n), which the simulator only approaches: it starts at most one
// service per event and never preempts a second server when the count drops
// below K. The numbers are a sanity bound, not a golden reference.
package analytic

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidParameters is returned for out-of-range model parameters.
var ErrInvalidParameters = errors.New("invalid model parameters")

// Solution holds the steady state of the chain.
type Solution struct {
	Probabilities       []float64 `json:"probabilities"` // P(n customers), n = 0..2K
	AverageCustomers    float64   `json:"average_customers"`
	Throughput          float64   `json:"throughput"` // accepted arrivals per unit time
	BlockingProbability float64   `json:"blocking_probability"`
	Utilization         float64   `json:"utilization"`
	MeanSojournTime     float64   `json:"mean_sojourn_time"`
}

// BirthDeath solves the chain on states 0..2K with
//
//	birth(n) = lambda for n < K, lambda/2 for K <= n < 2K, 0 at 2K
//	death(n) = mu * min(n, usable(n)), usable(n) = 1 below K and servers from K on
func BirthDeath(capacity, servers int, lambda, mu float64) (*Solution, error) {
	if capacity < 2 || servers < 1 {
		return nil, fmt.Errorf("%w: capacity=%d servers=%d", ErrInvalidParameters, capacity, servers)
	}
	if !(lambda > 0) || !(mu > 0) || math.IsInf(lambda, 0) || math.IsInf(mu, 0) {
		return nil, fmt.Errorf("%w: lambda=%v mu=%v", ErrInvalidParameters, lambda, mu)
	}

	states := 2*capacity + 1
	births := make([]float64, states)
	busy := make([]float64, states)
	for n := 0; n < states; n++ {
		births[n] = birthRate(n, capacity, lambda)
		busy[n] = float64(min(n, usable(n, capacity, servers)))
	}

	// Unnormalised p[n] = p[n-1] * birth(n-1) / death(n).
	p := make([]float64, states)
	p[0] = 1
	for n := 1; n < states; n++ {
		p[n] = p[n-1] * births[n-1] / (mu * busy[n])
	}
	floats.Scale(1/floats.Sum(p), p)

	counts := make([]float64, states)
	for n := range counts {
		counts[n] = float64(n)
	}

	sol := &Solution{
		Probabilities:    p,
		AverageCustomers: floats.Dot(counts, p),
		Throughput:       floats.Dot(births, p),
		Utilization:      floats.Dot(busy, p) / float64(servers),
	}
	sol.BlockingProbability = 1 - sol.Throughput/lambda
	if sol.Throughput > 0 {
		sol.MeanSojournTime = sol.AverageCustomers / sol.Throughput
	}
	return sol, nil
}

func birthRate(n, capacity int, lambda float64) float64 {
	switch {
	case n < capacity:
		return lambda
	case n < 2*capacity:
		return lambda / 2
	default:
		return 0
	}
}

func usable(n, capacity, servers int) int {
	if n < capacity {
		return 1
	}
	return servers
}
