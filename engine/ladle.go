package engine

// LadleState is the ladle's turret-relevant lifecycle state (spec.md §4.2).
type LadleState int

const (
	LadleNew LadleState = iota
	LadleClosed
	LadleOpen
)

// Ladle specializes SteelContainer with three independent stochastic flow
// perturbations, applied on every SetFlowRate call (spec.md §4.2, and the
// Open Question resolution in DESIGN.md: perturbation compounds with the
// caller's own cadence). A struct embedding SteelContainer rather than an
// interface variant, since every container shares the queue mechanics
// wholesale; the perturbation shape (turbulence + occasional spike +
// occasional multi-call clog) follows a correlated-noise generator style,
// sampled via engine/rng.go's gonum-backed PartitionedRNG.
type Ladle struct {
	*SteelContainer

	State LadleState

	rng *PartitionedRNG

	clogRemaining int
}

// NewLadle creates a ladle over the given container details.
func NewLadle(details ContainerDetails, rng *PartitionedRNG) *Ladle {
	return &Ladle{
		SteelContainer: NewSteelContainer(details),
		State:          LadleNew,
		rng:            rng,
	}
}

// SetFlowRate applies turbulence, an occasional overcorrection spike, and
// an occasional multi-call clog to the commanded rate r, clamps the result
// to a 10 kg/s floor, and delegates to SteelContainer.SetFlowRate
// (spec.md §4.2).
func (l *Ladle) SetFlowRate(r float64) {
	flow := r

	// Turbulence: always applied.
	flow *= 1 + l.rng.Uniform(SubsystemLadle, -0.05, 0.05)

	// Overcorrection spike: 5% chance per call.
	if l.rng.Chance(SubsystemLadle, 0.05) {
		flow *= 1 + l.rng.Uniform(SubsystemLadle, -0.15, 0.15)
	}

	// Clogging: continue an in-progress clog, or roll a new one.
	if l.clogRemaining > 0 {
		flow *= l.rng.Uniform(SubsystemLadle, 0.3, 0.8)
		l.clogRemaining--
	} else if l.rng.Chance(SubsystemLadle, 0.02) {
		l.clogRemaining = l.rng.UniformInt(SubsystemLadle, 3, 6)
		flow *= l.rng.Uniform(SubsystemLadle, 0.3, 0.8)
		l.clogRemaining--
	}

	if flow < 10 {
		flow = 10
	}

	l.SteelContainer.SetFlowRate(flow)
}
