package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// VariateSource supplies the random variates consumed by the simulation.
// Implementations are deterministic: the same seed and the same call
// sequence MUST produce the same outputs.
type VariateSource interface {
	// Uniform returns the next variate in the open interval (0, 1).
	Uniform() float64
	// Exponential returns the next exponential variate with the given rate.
	Exponential(rate float64) float64
}

// === LehmerSource ===

const (
	lehmerMultiplier = 16807
	lehmerModulus    = 2147483647 // 2^31 - 1

	// DefaultSeed is the seed used by the reference generator.
	DefaultSeed int64 = 1234
)

// LehmerSource is a multiplicative linear congruential generator
// (Park-Miller minimal standard): seed' = 16807 * seed mod (2^31 - 1).
//
// Thread-safety: NOT thread-safe. Owned by a single simulation run.
type LehmerSource struct {
	state int64
}

// NewLehmerSource creates a LehmerSource. The seed is folded into
// [1, 2^31-2]; a state of 0 would make the generator emit 0 forever.
func NewLehmerSource(seed int64) *LehmerSource {
	s := seed % lehmerModulus
	if s < 0 {
		s += lehmerModulus
	}
	if s == 0 {
		s = 1
	}
	return &LehmerSource{state: s}
}

// Uniform advances the generator and returns state / (2^31 - 1).
func (l *LehmerSource) Uniform() float64 {
	l.state = (lehmerMultiplier * l.state) % lehmerModulus
	return float64(l.state) / float64(lehmerModulus)
}

// Exponential returns -1/rate * ln(U). The operand order matters for
// bit-identical results against the golden dataset.
func (l *LehmerSource) Exponential(rate float64) float64 {
	return exponential(l, rate)
}

// State returns the current generator state.
func (l *LehmerSource) State() int64 {
	return l.state
}

// === RandSource ===

// RandSource adapts a *rand.Rand to VariateSource.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a RandSource seeded with seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a variate in (0, 1). rand.Float64 can return exactly 0,
// which would make Exponential return +Inf, so zero draws are redrawn.
func (r *RandSource) Uniform() float64 {
	for {
		if u := r.rng.Float64(); u > 0 {
			return u
		}
	}
}

// Exponential returns -1/rate * ln(U).
func (r *RandSource) Exponential(rate float64) float64 {
	return exponential(r, rate)
}

func exponential(src VariateSource, rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) {
		panic(fmt.Sprintf("exponential: rate must be > 0, got %v", rate))
	}
	return -1 / rate * math.Log(src.Uniform())
}

// === Subsystem Constants ===

const (
	// SubsystemArrival drives inter-arrival times. Uses the master seed
	// directly in every mode.
	SubsystemArrival = "arrival"

	// SubsystemService drives service durations.
	SubsystemService = "service"

	// SubsystemAdmission drives the coin flip for arrivals above capacity.
	SubsystemAdmission = "admission"
)

// RNG modes accepted by SimConfig.RNG.
const (
	// RNGReference gives every subsystem its own LehmerSource seeded with
	// the master seed, matching the reference program's three generators.
	RNGReference = "reference"

	// RNGPartitioned derives a distinct math/rand seed per subsystem.
	RNGPartitioned = "partitioned"
)

// ValidRNGModes is the set of recognized RNG mode names.
var ValidRNGModes = map[string]bool{"": true, RNGReference: true, RNGPartitioned: true}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated variate sources per subsystem.
//
// Derivation formula:
//   - RNGReference: every subsystem uses LehmerSource(masterSeed)
//   - RNGPartitioned, SubsystemArrival: RandSource(masterSeed)
//   - RNGPartitioned, other subsystems: RandSource(masterSeed XOR fnv1a64(name))
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	mode       string
	subsystems map[string]VariateSource
}

// NewPartitionedRNG creates a PartitionedRNG. An empty mode means RNGReference.
// Panics on unrecognized modes; SimConfig.Validate rejects them earlier.
func NewPartitionedRNG(seed int64, mode string) *PartitionedRNG {
	if !ValidRNGModes[mode] {
		panic(fmt.Sprintf("unknown rng mode %q", mode))
	}
	if mode == "" {
		mode = RNGReference
	}
	return &PartitionedRNG{
		seed:       seed,
		mode:       mode,
		subsystems: make(map[string]VariateSource),
	}
}

// ForSubsystem returns the variate source for the named subsystem.
// The same name always returns the same instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) VariateSource {
	if src, ok := p.subsystems[name]; ok {
		return src
	}

	var src VariateSource
	switch {
	case p.mode == RNGReference:
		src = NewLehmerSource(p.seed)
	case name == SubsystemArrival:
		src = NewRandSource(p.seed)
	default:
		src = NewRandSource(p.seed ^ fnv1a64(name))
	}
	p.subsystems[name] = src
	return src
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// Mode returns the derivation mode.
func (p *PartitionedRNG) Mode() string {
	return p.mode
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
