package engine

import (
	"hash/fnv"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// with the same SimulationKey and identical configuration MUST produce
// bit-for-bit identical traces. Grounded directly on sim/rng.go's
// SimulationKey.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem names ===

const (
	// SubsystemLadle is the RNG subsystem for ladle flow perturbation
	// (turbulence, overcorrection spikes, clogging).
	SubsystemLadle = "ladle"
	// SubsystemTundish is the RNG subsystem for tundish temperature jitter.
	SubsystemTundish = "tundish"
	// SubsystemSchedule is the RNG subsystem for catalog/sequence
	// generation (grade selection, product aim lengths).
	SubsystemSchedule = "schedule"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so perturbing the ladle's flow in a given tick never
// perturbs the tundish's or schedule's draws in the same tick, and replays
// are reproducible per-subsystem even as new subsystems are added.
//
// Derivation: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The simulation is single-writer per
// spec.md §5; callers must not share a PartitionedRNG across goroutines.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG rooted at key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, subsystems: make(map[string]*rand.Rand)}
}

func (p *PartitionedRNG) rngFor(subsystem string) *rand.Rand {
	if r, ok := p.subsystems[subsystem]; ok {
		return r
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(subsystem))
	seed := int64(p.key) ^ int64(h.Sum64())
	r := rand.New(rand.NewSource(seed))
	p.subsystems[subsystem] = r
	return r
}

// Uniform draws a single sample from U(lo, hi) on the named subsystem's
// isolated stream, via gonum's distuv.Uniform.
func (p *PartitionedRNG) Uniform(subsystem string, lo, hi float64) float64 {
	u := distuv.Uniform{Min: lo, Max: hi, Src: p.rngFor(subsystem)}
	return u.Rand()
}

// UniformInt draws an integer uniformly from [lo, hi] inclusive.
func (p *PartitionedRNG) UniformInt(subsystem string, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rngFor(subsystem).Intn(hi-lo+1)
}

// Chance reports true with probability p (0 <= p <= 1) on the named
// subsystem's stream.
func (p *PartitionedRNG) Chance(subsystem string, probability float64) bool {
	return p.rngFor(subsystem).Float64() < probability
}

// Choice picks a uniformly random element of items. Panics if items is
// empty — callers must guard (an empty catalog is an InvalidConfigError at
// a higher layer).
func Choice[T any](p *PartitionedRNG, subsystem string, items []T) T {
	idx := p.rngFor(subsystem).Intn(len(items))
	return items[idx]
}
