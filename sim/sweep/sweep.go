// Package sweep runs the simulator across a range of offered loads.
// Every load point gets a fresh QueueingSystem and Simulator; nothing is
// shared between points.
package sweep

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mmk-sim/sim"
	"github.com/inference-sim/mmk-sim/sim/analytic"
)

// DefaultSteps is the number of load points in the reference sweep (0.1..1.0).
const DefaultSteps = 10

// Point is the outcome of one load level.
type Point struct {
	Load     float64            `json:"load"` // lambda / (m * mu)
	Summary  sim.RunSummary     `json:"summary"`
	Analytic *analytic.Solution `json:"analytic,omitempty"`
}

// Result collects a sweep. The series slices are in load order and mirror
// the four arrays reported by the reference program.
type Result struct {
	Points              []Point   `json:"points"`
	AverageCustomers    []float64 `json:"average_customers"`
	AverageTime         []float64 `json:"average_time"`
	BlockingProbability []float64 `json:"blocking_probability"`
	Utilization         []float64 `json:"utilization"`
}

// Options tweaks a sweep.
type Options struct {
	// WithAnalytic attaches the birth-death approximation to every point.
	WithAnalytic bool
}

// Loads returns steps evenly spaced loads ending at 1: (i+1)/steps.
func Loads(steps int) []float64 {
	if steps < 1 {
		return nil
	}
	loads := make([]float64, steps)
	for i := range loads {
		loads[i] = float64(i+1) / float64(steps)
	}
	return loads
}

// Run simulates base once per load with lambda = load * m * mu.
func Run(base sim.SimConfig, loads []float64, opts Options) (*Result, error) {
	if len(loads) == 0 {
		return nil, fmt.Errorf("%w: no loads to sweep", sim.ErrInvalidConfiguration)
	}
	res := &Result{Points: make([]Point, 0, len(loads))}
	for _, load := range loads {
		cfg := base.WithLoad(load)
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			return nil, fmt.Errorf("load %v: %w", load, err)
		}
		summary, err := s.Run()
		if err != nil {
			return nil, fmt.Errorf("load %v: %w", load, err)
		}
		logrus.Infof("load=%.2f lambda=%.3f L=%.4f Pb=%.4f U=%.4f",
			load, cfg.ArrivalRate, summary.AverageCustomers, summary.BlockingProbability, summary.Utilization)

		p := Point{Load: load, Summary: summary}
		if opts.WithAnalytic {
			sol, err := analytic.BirthDeath(cfg.Capacity, cfg.Servers, cfg.ArrivalRate, cfg.ServiceRate)
			if err != nil {
				return nil, fmt.Errorf("load %v: %w", load, err)
			}
			p.Analytic = sol
		}
		res.add(p)
	}
	return res, nil
}

func (r *Result) add(p Point) {
	r.Points = append(r.Points, p)
	r.AverageCustomers = append(r.AverageCustomers, p.Summary.AverageCustomers)
	r.AverageTime = append(r.AverageTime, p.Summary.AverageSojournTime)
	r.BlockingProbability = append(r.BlockingProbability, p.Summary.BlockingProbability)
	r.Utilization = append(r.Utilization, p.Summary.Utilization)
}
