package engine

// DefaultTundishDetails returns the tundish geometry named in spec.md §4.3.
func DefaultTundishDetails() ContainerDetails {
	return ContainerDetails{
		ID:               "tundish",
		WidthM:           3.876,
		DepthM:           1.550,
		MaxLevelM:        1.181,
		ThresholdMm:      127,
		InitialFlowRate:  30,
		MaxFlowRateKgSec: 150,
	}
}

// Tundish specializes SteelContainer with a scalar temperature and derived
// superheat (spec.md §4.3). Grounded on the same variant pattern as Ladle
// (sim/kv_store.go-style base-plus-strategy).
type Tundish struct {
	*SteelContainer

	TemperatureC float64
	rng          *PartitionedRNG

	initialized bool
}

// NewTundish creates a tundish with the default geometry.
func NewTundish(rng *PartitionedRNG) *Tundish {
	return &Tundish{SteelContainer: NewSteelContainer(DefaultTundishDetails()), rng: rng}
}

// AddSteel adds fragment via the base container, then applies the
// temperature update rule: initialize on the very first addition, bump on
// every subsequent one (spec.md §4.3).
func (t *Tundish) AddSteel(fragment *HeatFragment) error {
	if err := t.SteelContainer.AddSteel(fragment); err != nil {
		return err
	}
	if !t.initialized {
		t.TemperatureC = 1550 + float64(t.rng.UniformInt(SubsystemTundish, 0, 9))
		t.initialized = true
	} else {
		t.TemperatureC += t.rng.Uniform(SubsystemTundish, 0, 1)*5 + 3
	}
	return nil
}

// CoolTick subtracts one second of cooling loss from TemperatureC, with a
// faster loss rate while not flowing (spec.md §4.3). Called once per 1Hz
// tick by the driver.
func (t *Tundish) CoolTick() {
	var cooling float64
	if t.FlowRateKgSec() > 0 {
		cooling = t.rng.Uniform(SubsystemTundish, 0, 1)*0.05 + 0.02
	} else {
		cooling = t.rng.Uniform(SubsystemTundish, 0, 1)*0.1 + 0.05
	}
	t.TemperatureC -= cooling
}

// SuperheatC is TemperatureC minus the weighted-average liquidus
// temperature of the current contents.
func (t *Tundish) SuperheatC() float64 {
	avg := t.weightedAverage(func(f HeatFragment) float64 { return f.LiquidusC })
	return t.TemperatureC - avg
}

// SuperheatTargetC is TemperatureC minus the weighted-average target
// superheat of the current contents (spec.md §4.3).
func (t *Tundish) SuperheatTargetC() float64 {
	avg := t.weightedAverage(func(f HeatFragment) float64 { return f.TargetSuperheatC })
	return t.TemperatureC - avg
}

func (t *Tundish) weightedAverage(field func(HeatFragment) float64) float64 {
	net := t.NetWeightKg()
	if net == 0 {
		return 0
	}
	var sum float64
	for _, f := range t.Fragments() {
		sum += field(f) * f.WeightKg
	}
	return sum / net
}

// StopperRodPositionPercent is the commanded flow as a percentage of
// MaxFlowRateKgSec, clamped to [0, 100] (spec.md §4.3).
func (t *Tundish) StopperRodPositionPercent() float64 {
	if t.Details.MaxFlowRateKgSec == 0 {
		return 0
	}
	pct := t.FlowRateKgSec() / t.Details.MaxFlowRateKgSec * 100
	return clamp(pct, 0, 100)
}
