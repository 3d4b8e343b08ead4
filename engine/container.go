package engine

// ContainerDetails is the static geometry/rate configuration for a
// SteelContainer (spec.md §3).
type ContainerDetails struct {
	ID               string
	WidthM           float64
	DepthM           float64
	HeightM          float64
	MaxLevelM        float64
	ThresholdMm      float64
	InitialFlowRate  float64 // kg/s
	MaxFlowRateKgSec float64
	SteelDensity     float64 // kg/m^3, defaults to 7850
}

func (d ContainerDetails) density() float64 {
	if d.SteelDensity == 0 {
		return 7850
	}
	return d.SteelDensity
}

// SteelContainer is the base abstraction for Ladle/Tundish/Mold: an ordered
// queue of heat-fragments with level/weight/flow accessors and lifecycle
// events, implemented as a concrete struct embedded by each variant rather
// than an interface, since every variant shares the queue mechanics
// wholesale and only overrides SetFlowRate/adds fields (spec.md §4.2-§4.4).
type SteelContainer struct {
	EventBus

	Details ContainerDetails

	queue             []HeatFragment
	flowRateKgSec     float64
	mixedSteelWeightKg float64
	thresholdReached  bool

	pouring        bool
	pourFirstTick  bool
}

// NewSteelContainer creates an empty container with the given details.
func NewSteelContainer(details ContainerDetails) *SteelContainer {
	return &SteelContainer{Details: details}
}

// NetWeightKg is the sum of fragment weights currently held.
func (c *SteelContainer) NetWeightKg() float64 {
	var total float64
	for _, f := range c.queue {
		total += f.WeightKg
	}
	return total
}

// LevelMm is the derived steel level in millimeters.
func (c *SteelContainer) LevelMm() float64 {
	net := c.NetWeightKg()
	area := c.Details.WidthM * c.Details.DepthM
	if area == 0 {
		return 0
	}
	return (net / c.Details.density()) / area * 1000
}

// MixedSteelWeightKg is the portion of NetWeightKg attributed to blended
// heats (spec.md §3).
func (c *SteelContainer) MixedSteelWeightKg() float64 { return c.mixedSteelWeightKg }

// MixedSteelPercent is mixed/net * 100, or 0 if the container is empty.
func (c *SteelContainer) MixedSteelPercent() float64 {
	net := c.NetWeightKg()
	if net == 0 {
		return 0
	}
	return c.mixedSteelWeightKg / net * 100
}

// FlowRateKgSec is the current commanded/observed flow rate.
func (c *SteelContainer) FlowRateKgSec() float64 { return c.flowRateKgSec }

// ThresholdReached reports whether the one-shot threshold latch has fired.
func (c *SteelContainer) ThresholdReached() bool { return c.thresholdReached }

// Fragments returns a defensive copy of the current FIFO queue, head first.
func (c *SteelContainer) Fragments() []HeatFragment {
	out := make([]HeatFragment, len(c.queue))
	copy(out, c.queue)
	return out
}

// AddSteel enqueues fragment, coalescing into an existing same-heat
// fragment if one is present, applies the "tundish 50% rule", latches the
// threshold event on first crossing, and always emits NewSteelAdded
// (spec.md §4.1).
func (c *SteelContainer) AddSteel(fragment *HeatFragment) error {
	if fragment == nil {
		return &InvalidInputError{Op: "SteelContainer.AddSteel", Reason: "fragment is nil"}
	}
	if fragment.WeightKg < 0 {
		return &InvalidInputError{Op: "SteelContainer.AddSteel", Reason: "fragment weight is negative"}
	}

	for i := range c.queue {
		if c.queue[i].HeatID == fragment.HeatID {
			c.queue[i].WeightKg += fragment.WeightKg
			c.Emit(EventNewSteelAdded, fragment.HeatID)
			c.checkThreshold()
			return nil
		}
	}

	if len(c.queue) > 0 {
		c.mixedSteelWeightKg = c.NetWeightKg() * 0.5
	}
	c.queue = append(c.queue, fragment.Clone())
	c.checkThreshold()
	c.Emit(EventNewSteelAdded, fragment.HeatID)
	return nil
}

func (c *SteelContainer) checkThreshold() {
	if !c.thresholdReached && c.LevelMm() >= c.Details.ThresholdMm {
		c.thresholdReached = true
		c.Emit(EventWeightThresholdReached, nil)
	}
}

// RemoveSteel removes up to weight kg from the head of the queue, emitting
// HeatOut once per pour call (on the first dequeue iteration), SteelPoured
// for each fragment (full or partial) removed, and ContainerEmptied when
// the container reaches zero net weight (spec.md §4.1).
func (c *SteelContainer) RemoveSteel(weight float64) {
	c.flowRateKgSec = weight
	remaining := weight
	firstIteration := true
	initialNet := c.NetWeightKg()

	var lastHeatID int
	for remaining > 0 && len(c.queue) > 0 {
		head := c.queue[0]
		if firstIteration {
			c.Emit(EventHeatOut, head.HeatID)
			firstIteration = false
		}
		lastHeatID = head.HeatID

		if head.WeightKg <= remaining {
			poured := head
			c.queue = c.queue[1:]
			remaining -= head.WeightKg
			c.Emit(EventSteelPoured, poured)
		} else {
			poured := HeatFragment{
				HeatID:           head.HeatID,
				WeightKg:         remaining,
				SteelGradeID:     head.SteelGradeID,
				LiquidusC:        head.LiquidusC,
				TargetSuperheatC: head.TargetSuperheatC,
			}
			c.queue[0].WeightKg -= remaining
			remaining = 0
			c.Emit(EventSteelPoured, poured)
		}
	}

	finalNet := c.NetWeightKg()
	removed := initialNet - finalNet
	c.mixedSteelWeightKg -= removed
	if c.mixedSteelWeightKg < 0 {
		c.mixedSteelWeightKg = 0
	}

	if finalNet == 0 && initialNet > 0 {
		c.flowRateKgSec = 0
		c.Emit(EventContainerEmptied, lastHeatID)
	}
}

// SetFlowRate stores r unless the container is empty, in which case it is
// a no-op (spec.md §4.1). Variants override this to apply perturbation
// before delegating here.
func (c *SteelContainer) SetFlowRate(r float64) {
	if c.NetWeightKg() == 0 {
		return
	}
	c.flowRateKgSec = r
}

// StartPour initializes flow to the container's configured initial rate,
// the first step of PourAsync (spec.md §4.1).
func (c *SteelContainer) StartPour() {
	c.pouring = true
	c.flowRateKgSec = c.Details.InitialFlowRate
}

// PourTick advances the pour state machine by one 1Hz tick, removing the
// current flow rate's worth of steel. Returns true once the container has
// emptied and the pour is complete. Models PourAsync (spec.md §4.1) as a
// stepper object advanced by the 1Hz driver (spec.md §9), not a goroutine.
func (c *SteelContainer) PourTick() (done bool) {
	if !c.pouring {
		return true
	}
	c.RemoveSteel(c.flowRateKgSec)
	if c.NetWeightKg() == 0 {
		c.pouring = false
		return true
	}
	return false
}

// IsPouring reports whether PourTick has been started and not yet
// completed.
func (c *SteelContainer) IsPouring() bool { return c.pouring }
