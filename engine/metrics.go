package engine

import (
	"fmt"

	"github.com/ccsim/castersim/telemetry"
)

// overviewArea is the sole telemetry area named in spec.md §6's required
// metrics list.
const overviewArea = "overview"

// BuildOverviewProviders returns one telemetry.Provider per required metric
// named in spec.md §6, closed over caster and tracking, split into
// individually-registrable closures so a single failing read (e.g. no heat
// currently casting) only blanks one metric instead of the whole tick.
func BuildOverviewProviders(caster *Caster, tracking *Tracking) map[string]telemetry.Provider {
	providers := map[string]telemetry.Provider{
		"ladle_weight_kg": func() (any, error) {
			ladle := caster.Turret.LadleInCastPosition()
			if ladle == nil {
				return nil, fmt.Errorf("no ladle in cast position")
			}
			return ladle.NetWeightKg(), nil
		},
		"ladle_flow_kg_sec": func() (any, error) {
			ladle := caster.Turret.LadleInCastPosition()
			if ladle == nil {
				return nil, fmt.Errorf("no ladle in cast position")
			}
			return ladle.FlowRateKgSec(), nil
		},
		"tundish_weight_kg":        func() (any, error) { return caster.Tundish.NetWeightKg(), nil },
		"tundish_level_mm":         func() (any, error) { return caster.Tundish.LevelMm(), nil },
		"tundish_temperature_c":    func() (any, error) { return caster.Tundish.TemperatureC, nil },
		"tundish_superheat_c":      func() (any, error) { return caster.Tundish.SuperheatC(), nil },
		"tundish_superheat_target_c": func() (any, error) { return caster.Tundish.SuperheatTargetC(), nil },
		"tundish_flow_kg_sec":      func() (any, error) { return caster.Tundish.FlowRateKgSec(), nil },
		"tundish_mixed_steel_pct":  func() (any, error) { return caster.Tundish.MixedSteelPercent(), nil },
		"tundish_mixed_steel":      func() (any, error) { return caster.Tundish.MixedSteelWeightKg() > 0, nil },
		"tundish_rod_position_pct": func() (any, error) { return caster.Tundish.StopperRodPositionPercent(), nil },
		"mold_level_mm":            func() (any, error) { return caster.Mold.LevelMm(), nil },
		"mold_flow_kg_sec":         func() (any, error) { return caster.Mold.FlowRateKgSec(), nil },
		"total_cast_length_m":      func() (any, error) { return caster.Strand.TotalCastLength, nil },
		"cast_speed_m_min":         func() (any, error) { return caster.Strand.CastSpeedMetersMin(), nil },
		"head_position_m":          func() (any, error) { return caster.Strand.HeadFromMoldMeters, nil },
		"tail_position_m":          func() (any, error) { return caster.Strand.TailFromMoldMeters, nil },
		"next_cut_id":              func() (any, error) { return caster.Torch.NextProductID(), nil },
		"next_cut_aim_length_m":    func() (any, error) { return caster.Torch.NextProductAimMeters(), nil },
		"measured_cut_length_m":    func() (any, error) { return tracking.LastCutLengthMeters(), nil },
		"current_heat_id": func() (any, error) {
			heat := tracking.CurrentHeat()
			if heat == nil {
				return nil, fmt.Errorf("no heat currently casting")
			}
			return heat.ID, nil
		},
		"steel_grade": func() (any, error) {
			heat := tracking.CurrentHeat()
			if heat == nil {
				return nil, fmt.Errorf("no heat currently casting")
			}
			return heat.SteelGradeID, nil
		},
	}

	for i := 0; i < 2; i++ {
		idx := i
		providers[fmt.Sprintf("heat_%d_id", idx+1)] = func() (any, error) {
			frags := caster.Tundish.Fragments()
			if idx >= len(frags) {
				return nil, fmt.Errorf("tundish holds fewer than %d fragments", idx+1)
			}
			return frags[idx].HeatID, nil
		}
		providers[fmt.Sprintf("heat_%d_weight", idx+1)] = func() (any, error) {
			frags := caster.Tundish.Fragments()
			if idx >= len(frags) {
				return nil, fmt.Errorf("tundish holds fewer than %d fragments", idx+1)
			}
			return frags[idx].WeightKg, nil
		}
	}

	for _, sec := range caster.Cooling.Sections() {
		id := sec.ID
		providers[fmt.Sprintf("cooling_section_%s", id)] = func() (any, error) {
			return caster.Cooling.FlowLps(id), nil
		}
	}

	return providers
}

// RegisterOverviewMetrics registers every BuildOverviewProviders entry onto
// publisher under spec.md §6's single "overview" area.
func RegisterOverviewMetrics(publisher *telemetry.Publisher, caster *Caster, tracking *Tracking) {
	for name, provider := range BuildOverviewProviders(caster, tracking) {
		publisher.Register(name, provider, overviewArea)
	}
}
