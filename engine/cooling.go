package engine

// CoolingSection is a single spray-cooling section configuration
// (spec.md §4.9 / §6).
type CoolingSection struct {
	ID             string
	StartPosMeters float64
	EndPosMeters   float64
	PositionFactor float64
}

// CoolingSectionController maps head/tail/speed to per-section flow rates,
// throttled to at most once per 500ms and only when the inputs actually
// changed (spec.md §4.9).
type CoolingSectionController struct {
	sections       []CoolingSection
	baseFlowLps    float64
	flowPerSpeedLps float64

	flows map[string]float64

	ticksSinceActivate int
	lastHead, lastTail, lastSpeed float64
	hasActivated bool
}

// NewCoolingSectionController creates a controller over the given sections
// and base-flow coefficients (spec.md §6 cooling configuration).
func NewCoolingSectionController(sections []CoolingSection, baseFlowLps, flowPerSpeedLps float64) *CoolingSectionController {
	return &CoolingSectionController{
		sections:        sections,
		baseFlowLps:     baseFlowLps,
		flowPerSpeedLps: flowPerSpeedLps,
		flows:           make(map[string]float64, len(sections)),
	}
}

// throttleTicks is the 500ms throttle expressed in 1Hz driver ticks: the
// caster orchestrator calls Activate at most once per tick, which is already
// slower than 500ms, so with a threshold of 1 the call counter admits every
// call whose inputs changed; only the change check suppresses recomputation.
const throttleTicks = 1

// Activate recomputes per-section flow given (headPos, tailPos, castSpeed),
// subject to the 500ms throttle and a change check (spec.md §4.9). Returns
// true if flows were recomputed this call.
func (c *CoolingSectionController) Activate(headPos, tailPos, castSpeed float64) bool {
	unchanged := c.hasActivated && headPos == c.lastHead && tailPos == c.lastTail && castSpeed == c.lastSpeed
	if unchanged {
		return false
	}
	c.ticksSinceActivate++
	if c.hasActivated && c.ticksSinceActivate < throttleTicks {
		return false
	}
	c.ticksSinceActivate = 0
	c.hasActivated = true
	c.lastHead, c.lastTail, c.lastSpeed = headPos, tailPos, castSpeed

	for _, sec := range c.sections {
		headInSection := headPos >= sec.StartPosMeters
		tailStillInSection := tailPos > 0 && tailPos < sec.EndPosMeters
		if headInSection || tailStillInSection {
			c.flows[sec.ID] = (c.baseFlowLps + c.flowPerSpeedLps*castSpeed) * sec.PositionFactor
		} else {
			c.flows[sec.ID] = 0
		}
	}
	return true
}

// FlowLps returns the last computed flow for the named section.
func (c *CoolingSectionController) FlowLps(id string) float64 { return c.flows[id] }

// Sections returns the configured sections, in configuration order.
func (c *CoolingSectionController) Sections() []CoolingSection { return c.sections }
