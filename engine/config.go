package engine

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CasterConfiguration groups the recognized casterConfiguration options and
// their effects (spec.md §6). Grounded on sim/config.go's config-struct
// grouping style.
type CasterConfiguration struct {
	// TundishWeightFluctuationTolerance and TundishWeightCorrectionFactor
	// are reserved for future use (spec.md §6); not read by this engine.
	TundishWeightFluctuationTolerance float64 `yaml:"tundish_weight_fluctuation_tolerance"`
	TundishWeightCorrectionFactor     float64 `yaml:"tundish_weight_correction_factor"`

	MaxTundishWeightKg  float64 `yaml:"max_tundish_weight_kg"`
	RampUpThresholdKg   float64 `yaml:"ramp_up_threshold_kg"`

	// LowPouringRate/HighPouringRate/SteadyStateRate are reserved legacy
	// config (spec.md §9(d)); not referenced by the current flow-control
	// path (engine/caster.go).
	LowPouringRateKgSec    float64 `yaml:"low_pouring_rate_kg_sec"`
	HighPouringRateKgSec   float64 `yaml:"high_pouring_rate_kg_sec"`
	SteadyStateRateKgSec   float64 `yaml:"steady_state_rate_kg_sec"`

	TorchLocationMeters float64 `yaml:"torch_location_meters"`
	SteelDensity        float64 `yaml:"steel_density"`

	TargetCastSpeedMetersMin float64 `yaml:"target_cast_speed_meters_min"`
	SpeedRampDurationSeconds int64   `yaml:"speed_ramp_duration_seconds"`
}

// NewCasterConfiguration builds a CasterConfiguration from explicit
// arguments. Zero-valued arguments are NOT replaced with defaults.
func NewCasterConfiguration(
	tundishWeightFluctuationTolerance, tundishWeightCorrectionFactor,
	maxTundishWeightKg, rampUpThresholdKg,
	lowPouringRateKgSec, highPouringRateKgSec, steadyStateRateKgSec,
	torchLocationMeters, steelDensity,
	targetCastSpeedMetersMin float64,
	speedRampDurationSeconds int64,
) CasterConfiguration {
	return CasterConfiguration{
		TundishWeightFluctuationTolerance: tundishWeightFluctuationTolerance,
		TundishWeightCorrectionFactor:     tundishWeightCorrectionFactor,
		MaxTundishWeightKg:                maxTundishWeightKg,
		RampUpThresholdKg:                 rampUpThresholdKg,
		LowPouringRateKgSec:               lowPouringRateKgSec,
		HighPouringRateKgSec:              highPouringRateKgSec,
		SteadyStateRateKgSec:              steadyStateRateKgSec,
		TorchLocationMeters:               torchLocationMeters,
		SteelDensity:                      steelDensity,
		TargetCastSpeedMetersMin:          targetCastSpeedMetersMin,
		SpeedRampDurationSeconds:          speedRampDurationSeconds,
	}
}

// CoolingNozzle is one nozzle within a CoolingSectionConfig.
type CoolingNozzle struct {
	Type     string  `yaml:"type"`
	Position float64 `yaml:"position"`
}

// CoolingSectionConfig is one section's wire configuration (spec.md §6).
type CoolingSectionConfig struct {
	ID             string          `yaml:"id"`
	PositionFactor float64         `yaml:"position_factor"`
	StartPosition  float64         `yaml:"start_position"`
	EndPosition    float64         `yaml:"end_position"`
	Nozzles        []CoolingNozzle `yaml:"nozzles"`
}

// CoolingConfiguration is the cooling system's wire configuration
// (spec.md §6).
type CoolingConfiguration struct {
	BaseFlowLps     float64                `yaml:"base_flow_lps"`
	FlowPerSpeedLps float64                `yaml:"flow_per_speed_lps"`
	Sections        []CoolingSectionConfig `yaml:"sections"`
}

// ToSections converts the wire configuration into the CoolingSection values
// consumed by CoolingSectionController.
func (c CoolingConfiguration) ToSections() []CoolingSection {
	out := make([]CoolingSection, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = CoolingSection{
			ID:             s.ID,
			StartPosMeters: s.StartPosition,
			EndPosMeters:   s.EndPosition,
			PositionFactor: s.PositionFactor,
		}
	}
	return out
}

// EngineConfig aggregates every config value the engine needs, replacing
// the source's global configuration singleton (spec.md §9 design note)
// with an explicit value threaded through constructors.
type EngineConfig struct {
	Caster     CasterConfiguration  `yaml:"caster"`
	Cooling    CoolingConfiguration `yaml:"cooling"`
	CatalogPath string              `yaml:"catalog_path"`
	WidthMeters     float64         `yaml:"width_meters"`
	ThicknessMeters float64         `yaml:"thickness_meters"`
}

// LoadEngineConfig reads and strictly parses an EngineConfig from a YAML
// file (os.ReadFile + yaml.v3 KnownFields(true) strict decode). Returns
// ConfigLoadFailureError on any failure (fatal at start-up per spec.md §7).
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigLoadFailureError{Path: path, Err: err}
	}
	var cfg EngineConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, &ConfigLoadFailureError{Path: path, Err: fmt.Errorf("parsing engine config: %w", err)}
	}
	return &cfg, nil
}
