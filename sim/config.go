package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned before any simulation step runs when
// the run parameters are out of range.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultDepartures is the default stopping condition.
const DefaultDepartures int64 = 100000

// SimConfig groups the parameters of a single simulation run.
type SimConfig struct {
	Capacity    int     `yaml:"capacity"`     // K, must be >= 2
	Servers     int     `yaml:"servers"`      // m, fixed at 2
	ServiceRate float64 `yaml:"service_rate"` // mu per server, must be > 0
	ArrivalRate float64 `yaml:"arrival_rate"` // lambda, must be > 0
	Departures  int64   `yaml:"departures"`   // N, run stops after N departures
	Seed        int64   `yaml:"seed"`         // master seed for all variate streams
	RNG         string  `yaml:"rng"`          // "reference" (default) or "partitioned"
}

// DefaultSimConfig returns the reference scenario: K=4, m=2, mu=3, at 60%
// offered load (lambda = 0.6 * m * mu).
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Capacity:    4,
		Servers:     DefaultServers,
		ServiceRate: 3,
		ArrivalRate: 0.6 * DefaultServers * 3,
		Departures:  DefaultDepartures,
		Seed:        DefaultSeed,
		RNG:         RNGReference,
	}
}

// WithLoad returns a copy of c whose arrival rate is load * m * mu.
func (c SimConfig) WithLoad(load float64) SimConfig {
	c.ArrivalRate = load * float64(c.Servers) * c.ServiceRate
	return c
}

// Validate checks every parameter and returns an error wrapping
// ErrInvalidConfiguration on the first one out of range.
func (c SimConfig) Validate() error {
	if c.Capacity < 2 {
		return fmt.Errorf("%w: capacity must be >= 2, got %d", ErrInvalidConfiguration, c.Capacity)
	}
	if c.Servers != DefaultServers {
		return fmt.Errorf("%w: servers must be %d, got %d", ErrInvalidConfiguration, DefaultServers, c.Servers)
	}
	if !(c.ServiceRate > 0) || isInf(c.ServiceRate) {
		return fmt.Errorf("%w: service rate must be a finite value > 0, got %v", ErrInvalidConfiguration, c.ServiceRate)
	}
	if !(c.ArrivalRate > 0) || isInf(c.ArrivalRate) {
		return fmt.Errorf("%w: arrival rate must be a finite value > 0, got %v", ErrInvalidConfiguration, c.ArrivalRate)
	}
	if c.Departures < 1 {
		return fmt.Errorf("%w: departures must be >= 1, got %d", ErrInvalidConfiguration, c.Departures)
	}
	if !ValidRNGModes[c.RNG] {
		return fmt.Errorf("%w: unknown rng mode %q", ErrInvalidConfiguration, c.RNG)
	}
	return nil
}

func isInf(f float64) bool {
	return math.IsInf(f, 0)
}
