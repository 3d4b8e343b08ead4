package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverviewProviders_LadleMetricsAbsentWithNoCastLadle(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	_, err := providers["ladle_weight_kg"]()
	assert.Error(t, err)
	_, err = providers["ladle_flow_kg_sec"]()
	assert.Error(t, err)
}

func TestBuildOverviewProviders_TundishMetricsReflectState(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	require.NoError(t, caster.Tundish.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 1000}))
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	weight, err := providers["tundish_weight_kg"]()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, weight)
}

func TestBuildOverviewProviders_HeatFragmentMetricsAbsentBeyondQueueDepth(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	require.NoError(t, caster.Tundish.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 1000}))
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	id1, err := providers["heat_1_id"]()
	require.NoError(t, err)
	assert.Equal(t, 1, id1)

	_, err = providers["heat_2_id"]()
	assert.Error(t, err)
}

func TestBuildOverviewProviders_CurrentHeatAbsentWhenNoneCasting(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	seq.Heats[1] = NewHeat(1, "heat-1", 20000, "304")
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	_, err := providers["current_heat_id"]()
	assert.Error(t, err)
	_, err = providers["steel_grade"]()
	assert.Error(t, err)
}

func TestBuildOverviewProviders_CurrentHeatPresentWhileCasting(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	heat := NewHeat(1, "heat-1", 20000, "304")
	require.NoError(t, heat.AdvanceTo(HeatNext))
	require.NoError(t, heat.AdvanceTo(HeatPouring))
	require.NoError(t, heat.AdvanceTo(HeatClosed))
	require.NoError(t, heat.AdvanceTo(HeatCasting))
	seq.Heats[1] = heat
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	id, err := providers["current_heat_id"]()
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	grade, err := providers["steel_grade"]()
	require.NoError(t, err)
	assert.Equal(t, "304", grade)
}

func TestBuildOverviewProviders_CoolingSectionMetricsUseSectionIDs(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	cfg := testEngineConfig()
	caster := NewCaster(cfg, cfg.WidthMeters, cfg.ThicknessMeters, rng)
	caster.Cooling.Activate(1.0, 0, 4.0)
	seq := NewSequence("seq-1", cfg.WidthMeters, cfg.ThicknessMeters, cfg.Caster.SteelDensity)
	catalog := testCatalog()
	tracking := NewTracking(seq, caster, catalog, rng, 10, fixedNow)

	providers := BuildOverviewProviders(caster, tracking)

	flow, err := providers["cooling_section_1"]()
	require.NoError(t, err)
	assert.Greater(t, flow.(float64), 0.0)
}
