package engine

import "time"

// DefaultLadleDetails returns generic ladle geometry (spec.md §4.2 gives no
// explicit dimensions beyond the ≥20000 kg turret constraint; threshold is
// set high enough that the ladle's own WeightThresholdReached — unused by
// any wiring — never latches spuriously).
func DefaultLadleDetails() ContainerDetails {
	return ContainerDetails{
		ID:               "ladle",
		WidthM:           2.5,
		DepthM:           1.8,
		HeightM:          3.0,
		MaxLevelM:        3.0,
		ThresholdMm:      1 << 30,
		InitialFlowRate:  60,
		MaxFlowRateKgSec: 120,
	}
}

// Tracking drives a Sequence's heats strictly in ascending heat-id order
// through the machine, attributes cast length to heats, and signals
// completion via CastingFinished (spec.md §4.12). Grounded on sim/router.go's
// owns-state-plus-subscribes-to-callbacks shape, generalized from routing
// requests to driving heats.
type Tracking struct {
	EventBus

	Sequence *Sequence
	Caster   *Caster
	Catalog  *Catalog

	rng                     *PartitionedRNG
	now                     func() time.Time
	rotationDurationSeconds int64

	heatIDs          []int
	pendingLadleHeat map[*Ladle]int

	optimizedThisTailout bool
	lastCutLengthMeters  float64

	subTokens []disposeFn
}

// LastCutLengthMeters returns the measured length of the most recent cut,
// or 0 if no cut has happened yet.
func (tr *Tracking) LastCutLengthMeters() float64 { return tr.lastCutLengthMeters }

// CurrentHeat returns the first heat (ascending id) currently in status
// Casting or Cutting, or nil if none (spec.md §6 "current heat id"/"steel
// grade" metrics).
func (tr *Tracking) CurrentHeat() *Heat {
	for _, id := range tr.heatIDs {
		if heat := tr.Sequence.Heats[id]; heat.Status == HeatCasting || heat.Status == HeatCutting {
			return heat
		}
	}
	return nil
}

// NewTracking creates a Tracking driver over seq, wiring heat-status
// transitions onto caster's components. now supplies timestamps for heat
// open/close/casting times, injected explicitly rather than called directly
// so timestamps stay testable: pass time.Now in production, a fixed func
// in tests.
func NewTracking(seq *Sequence, caster *Caster, catalog *Catalog, rng *PartitionedRNG, rotationDurationSeconds int64, now func() time.Time) *Tracking {
	ids := make([]int, 0, len(seq.Heats))
	for id := range seq.Heats {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}

	tr := &Tracking{
		Sequence:                seq,
		Caster:                  caster,
		Catalog:                 catalog,
		rng:                     rng,
		now:                     now,
		rotationDurationSeconds: rotationDurationSeconds,
		heatIDs:                 ids,
		pendingLadleHeat:        make(map[*Ladle]int),
	}
	tr.wire()
	return tr
}

func (tr *Tracking) wire() {
	tok := tr.Caster.Turret.Subscribe(EventRotated, func(payload any) {
		arm := payload.(TurretArm)
		ladle := tr.Caster.Turret.LadleOnArm(arm)
		if ladle == nil {
			return
		}
		heatID, ok := tr.pendingLadleHeat[ladle]
		if !ok {
			return
		}
		delete(tr.pendingLadleHeat, ladle)
		heat := tr.Sequence.Heats[heatID]
		if heat == nil {
			return
		}
		tr.wireHeatEvents(ladle, heat)
		ladle.StartPour()
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Turret.Unsubscribe(EventRotated, tok) })

	tok = tr.Caster.Tundish.Subscribe(EventHeatOut, func(payload any) {
		heatID := payload.(int)
		heat := tr.Sequence.Heats[heatID]
		if heat == nil {
			return
		}
		heat.SetCastLengthAtStart(tr.Caster.Strand.TotalCastLength)
		_ = heat.AdvanceTo(HeatCasting)
		heat.CastingTimeUTC = tr.now()
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Tundish.Unsubscribe(EventHeatOut, tok) })

	tok = tr.Caster.Tundish.Subscribe(EventWeightThresholdReached, func(any) {
		tr.dequeueNextProduct()
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Tundish.Unsubscribe(EventWeightThresholdReached, tok) })

	tok = tr.Caster.Strand.Subscribe(EventAdvanced, func(payload any) {
		adv := payload.(AdvancedPayload)
		torchLoc := tr.Caster.Torch.TorchLocationMeters()
		for _, id := range tr.heatIDs {
			heat := tr.Sequence.Heats[id]
			if heat.CastingTimeUTC.IsZero() || heat.Status == HeatCast {
				continue
			}
			heat.HeatBoundaryMeters += adv.IncrementMeters
			switch heat.Status {
			case HeatCasting:
				if tr.Caster.Strand.TotalCastLength-heat.CastLengthAtStartMeters > torchLoc {
					_ = heat.AdvanceTo(HeatCutting)
				}
			case HeatCutting:
				_ = heat.AdvanceTo(HeatCast)
			}
		}
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Strand.Unsubscribe(EventAdvanced, tok) })

	tok = tr.Caster.Torch.Subscribe(EventCutDone, func(payload any) {
		tr.onCutDone(payload.(*Product))
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Torch.Unsubscribe(EventCutDone, tok) })

	tok = tr.Caster.Subscribe(EventCastingFinished, func(any) {
		tr.Emit(EventCastingFinished, nil)
	})
	tr.subTokens = append(tr.subTokens, func() { tr.Caster.Unsubscribe(EventCastingFinished, tok) })
}

func (tr *Tracking) wireHeatEvents(ladle *Ladle, heat *Heat) {
	tok := ladle.Subscribe(EventHeatOut, func(any) {
		_ = heat.AdvanceTo(HeatPouring)
		heat.OpenTimeUTC = tr.now()
	})
	tr.subTokens = append(tr.subTokens, func() { ladle.Unsubscribe(EventHeatOut, tok) })

	tok = ladle.Subscribe(EventContainerEmptied, func(any) {
		_ = heat.AdvanceTo(HeatClosed)
		heat.CloseTimeUTC = tr.now()
		_ = tr.StartNextHeat()
	})
	tr.subTokens = append(tr.subTokens, func() { ladle.Unsubscribe(EventContainerEmptied, tok) })
}

// Start begins driving the sequence: it picks the first pending heat and
// starts the load→rotate→pour pipeline for it (spec.md §4.12 step 1).
func (tr *Tracking) Start() error {
	return tr.StartNextHeat()
}

// StartNextHeat picks the next heat in status New (ascending heat-id
// order), marks it Next, loads a freshly-built Ladle onto the turret, and
// starts rotation. A no-op (returns nil) once every heat has been started.
func (tr *Tracking) StartNextHeat() error {
	heat := tr.nextPendingHeat()
	if heat == nil {
		return nil
	}
	if err := heat.AdvanceTo(HeatNext); err != nil {
		return err
	}

	grade, err := tr.Catalog.MustLookup(heat.SteelGradeID)
	if err != nil {
		return err
	}

	ladle := NewLadle(DefaultLadleDetails(), tr.rng)
	frag := &HeatFragment{
		HeatID:           heat.ID,
		WeightKg:         heat.NetWeightKg,
		SteelGradeID:     grade.SteelGradeID,
		LiquidusC:        grade.LiquidusTemperatureC,
		TargetSuperheatC: grade.TargetSuperheatC,
	}
	if err := ladle.AddSteel(frag); err != nil {
		return err
	}

	tr.pendingLadleHeat[ladle] = heat.ID
	if err := tr.Caster.Turret.AddLadle(ladle); err != nil {
		delete(tr.pendingLadleHeat, ladle)
		return err
	}
	return tr.Caster.Turret.StartRotate(tr.rotationDurationSeconds)
}

func (tr *Tracking) nextPendingHeat() *Heat {
	for _, id := range tr.heatIDs {
		if heat := tr.Sequence.Heats[id]; heat.Status == HeatNew {
			return heat
		}
	}
	return nil
}

func (tr *Tracking) dequeueNextProduct() {
	next := tr.Sequence.Products.Dequeue()
	if next == nil {
		tr.Caster.Torch.ResetNextProduct()
		return
	}
	tr.Caster.Torch.SetNextProduct(next, tr.Sequence.Products.Len() == 0)
}

// onCutDone records the finished cut, runs the optimizer exactly once per
// Tailout phase, and advances the torch to the next product (spec.md
// §4.12 "On Torch.CutDone").
func (tr *Tracking) onCutDone(product *Product) {
	product.WeightKg = product.CutLengthMeters * tr.Sequence.WidthM * tr.Sequence.ThicknessM * tr.Sequence.SteelDensity
	tr.Sequence.CutProducts = append(tr.Sequence.CutProducts, product)
	tr.lastCutLengthMeters = product.CutLengthMeters

	if tr.Caster.Strand.Mode == StrandTailout && !tr.optimizedThisTailout {
		steelInStrand := tr.Caster.Strand.HeadFromMoldMeters - tr.Caster.Strand.TailFromMoldMeters
		tr.Caster.Torch.SetOptimizationInProgress(true)
		optimized := Optimize(tr.Sequence.ID, steelInStrand, tr.Sequence.Products.Snapshot())
		tr.Sequence.Products.Replace(optimized)
		tr.Caster.Torch.SetOptimizationInProgress(false)
		tr.optimizedThisTailout = true
	}

	tr.dequeueNextProduct()
}

// Dispose unsubscribes every handler wire() registered, in reverse
// registration order, then disposes the owned Caster (spec.md §5
// "Cancellation & teardown": "Tracking's dispose calls Caster's dispose").
func (tr *Tracking) Dispose() {
	for i := len(tr.subTokens) - 1; i >= 0; i-- {
		tr.subTokens[i]()
	}
	tr.subTokens = nil
	tr.Caster.Dispose()
}
