package engine

// Caster is the orchestrator: it owns Turret, Tundish, Mold, Strand, Torch,
// and CoolingSectionController, and wires the cross-component callbacks
// described in spec.md §4.11. Grounded on sim/simulator.go's Simulator
// (owns sub-objects, wires callbacks, drives a periodic Step) and
// cmd/root.go's construct-then-run shape.
type Caster struct {
	EventBus

	config EngineConfig

	Turret  *Turret
	Tundish *Tundish
	Mold    *Mold
	Strand  *Strand
	Torch   *Torch
	Cooling *CoolingSectionController

	ladleToTundishLoopActive  bool
	tundishToMoldLoopActive   bool

	subTokens []disposeFn
}

type disposeFn func()

// NewCaster builds a Caster for one Sequence's width/thickness, wired per
// spec.md §4.11. rng backs every stochastic draw made by owned components.
func NewCaster(cfg EngineConfig, widthM, thicknessM float64, rng *PartitionedRNG) *Caster {
	c := &Caster{
		config:  cfg,
		Turret:  NewTurret(),
		Tundish: NewTundish(rng),
		Mold:    NewMold(widthM, thicknessM),
		Strand:  NewStrand(),
		Torch:   NewTorch(cfg.Caster.TorchLocationMeters),
		Cooling: NewCoolingSectionController(cfg.Cooling.ToSections(), cfg.Cooling.BaseFlowLps, cfg.Cooling.FlowPerSpeedLps),
	}
	c.wire()
	return c
}

func (c *Caster) wire() {
	tok := c.Turret.Subscribe(EventRotated, func(payload any) {
		arm := payload.(TurretArm)
		ladle := c.Turret.LadleOnArm(arm)
		if ladle == nil || ladle.State != LadleNew {
			return
		}
		pourTok := ladle.Subscribe(EventSteelPoured, func(payload any) {
			frag := payload.(HeatFragment)
			_ = c.Tundish.AddSteel(&frag)
		})
		c.subTokens = append(c.subTokens, func() { ladle.Unsubscribe(EventSteelPoured, pourTok) })
	})
	c.subTokens = append(c.subTokens, func() { c.Turret.Unsubscribe(EventRotated, tok) })

	tok = c.Tundish.Subscribe(EventWeightThresholdReached, func(any) {
		c.ladleToTundishLoopActive = true
		c.Tundish.StartPour()
	})
	c.subTokens = append(c.subTokens, func() { c.Tundish.Unsubscribe(EventWeightThresholdReached, tok) })

	tok = c.Tundish.Subscribe(EventSteelPoured, func(payload any) {
		frag := payload.(HeatFragment)
		_ = c.Mold.AddSteel(&frag)
	})
	c.subTokens = append(c.subTokens, func() { c.Tundish.Unsubscribe(EventSteelPoured, tok) })

	tok = c.Mold.Subscribe(EventWeightThresholdReached, func(any) {
		speed, err := NewSpeedController(0, c.config.Caster.TargetCastSpeedMetersMin, c.config.Caster.SpeedRampDurationSeconds)
		if err == nil {
			c.Strand.Start(speed)
		}
		c.tundishToMoldLoopActive = true
	})
	c.subTokens = append(c.subTokens, func() { c.Mold.Unsubscribe(EventWeightThresholdReached, tok) })

	tok = c.Mold.Subscribe(EventContainerEmptied, func(any) {
		c.Strand.SetMode(StrandTailout)
	})
	c.subTokens = append(c.subTokens, func() { c.Mold.Unsubscribe(EventContainerEmptied, tok) })

	tok = c.Strand.Subscribe(EventAdvanced, func(payload any) {
		adv := payload.(AdvancedPayload)
		if c.Strand.Mode != StrandTailout {
			mass := c.Mold.CrossSectionM2() * adv.IncrementMeters * c.densityOrDefault()
			c.Mold.RemoveSteel(mass)
		}
		c.Torch.Measure(adv.IncrementMeters, c.Strand.TailFromMoldMeters)
		if c.Strand.Mode == StrandTailout && c.Strand.TailFromMoldMeters > c.Torch.TorchLocationMeters() {
			c.Strand.Stop()
			c.Emit(EventCastingFinished, nil)
		}
		c.Cooling.Activate(c.Strand.HeadFromMoldMeters, c.Strand.TailFromMoldMeters, c.Strand.CastSpeedMetersMin())
	})
	c.subTokens = append(c.subTokens, func() { c.Strand.Unsubscribe(EventAdvanced, tok) })

	tok = c.Torch.Subscribe(EventCutDone, func(any) {
		c.Strand.HeadFromMoldMeters = c.Torch.TorchLocationMeters()
	})
	c.subTokens = append(c.subTokens, func() { c.Torch.Unsubscribe(EventCutDone, tok) })
}

func (c *Caster) densityOrDefault() float64 {
	if c.config.Caster.SteelDensity != 0 {
		return c.config.Caster.SteelDensity
	}
	return 7850
}

// Tick advances the caster by one 1Hz simulation tick: turret rotation,
// ladle/tundish pour stepping, strand advancement (which synchronously
// triggers mold removal, torch measurement, and cooling recomputation via
// the wiring above), and the two flow-control loops (spec.md §4.11,
// §2 "Control flow").
func (c *Caster) Tick() {
	c.Turret.RotateTick()

	if ladle := c.Turret.LadleInCastPosition(); ladle != nil && ladle.IsPouring() {
		ladle.PourTick()
	}

	c.Tundish.CoolTick()
	if c.Tundish.IsPouring() {
		c.Tundish.PourTick()
	}

	if c.Strand.Mode != StrandIdle {
		c.Strand.Tick()
	}

	if c.ladleToTundishLoopActive {
		if ladle := c.Turret.LadleInCastPosition(); ladle != nil {
			newFlow := ComputeFlowRate(c.Tundish.LevelMm(), ladle.FlowRateKgSec(), ladle.Details.MaxFlowRateKgSec, 453, 10)
			ladle.SetFlowRate(newFlow)
		}
		if c.Tundish.NetWeightKg() == 0 {
			c.ladleToTundishLoopActive = false
		}
	}

	if c.tundishToMoldLoopActive {
		newFlow := ComputeFlowRate(c.Mold.LevelMm(), c.Tundish.FlowRateKgSec(), c.Tundish.Details.MaxFlowRateKgSec, 825, 5)
		c.Tundish.SetFlowRate(newFlow)
	}
}

// Dispose cancels both flow-control loops and unsubscribes every
// cross-component handler registered by wire(), in reverse registration
// order (spec.md §5 "Cancellation & teardown").
func (c *Caster) Dispose() {
	c.ladleToTundishLoopActive = false
	c.tundishToMoldLoopActive = false
	for i := len(c.subTokens) - 1; i >= 0; i-- {
		c.subTokens[i]()
	}
	c.subTokens = nil
}
