package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTundishDetails_MatchesSpecGeometry(t *testing.T) {
	d := DefaultTundishDetails()
	assert.Equal(t, 3.876, d.WidthM)
	assert.Equal(t, 1.550, d.DepthM)
	assert.Equal(t, 1.181, d.MaxLevelM)
	assert.Equal(t, 127.0, d.ThresholdMm)
	assert.Equal(t, 30.0, d.InitialFlowRate)
	assert.Equal(t, 150.0, d.MaxFlowRateKgSec)
}

func TestTundish_AddSteel_InitializesTemperatureOnFirstAdd(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 5000, LiquidusC: 1450, TargetSuperheatC: 25}))

	assert.GreaterOrEqual(t, td.TemperatureC, 1550.0)
	assert.LessOrEqual(t, td.TemperatureC, 1559.0)
}

func TestTundish_AddSteel_BumpsTemperatureOnSubsequentAdd(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 5000, LiquidusC: 1450, TargetSuperheatC: 25}))
	before := td.TemperatureC

	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 2, WeightKg: 2000, LiquidusC: 1460, TargetSuperheatC: 27}))
	assert.Greater(t, td.TemperatureC, before)
}

func TestTundish_CoolTick_FasterLossWhenNotFlowing(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 5000}))

	before := td.TemperatureC
	td.CoolTick()
	afterIdle := before - td.TemperatureC

	td2 := NewTundish(NewPartitionedRNG(NewSimulationKey(3)))
	require.NoError(t, td2.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 5000}))
	td2.SetFlowRate(50)
	before2 := td2.TemperatureC
	td2.CoolTick()
	afterFlowing := before2 - td2.TemperatureC

	assert.Greater(t, afterIdle, 0.0)
	assert.Greater(t, afterFlowing, 0.0)
	assert.Greater(t, afterIdle, afterFlowing)
}

func TestTundish_SuperheatC_WeightedAverage(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 1000, LiquidusC: 1400}))

	superheat := td.SuperheatC()
	assert.Equal(t, td.TemperatureC-1400, superheat)
}

func TestTundish_SuperheatC_ZeroWhenEmpty(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	assert.Equal(t, td.TemperatureC, td.SuperheatC())
}

func TestTundish_StopperRodPositionPercent_ClampedToRange(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(3))
	td := NewTundish(rng)
	require.NoError(t, td.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 5000}))

	td.SetFlowRate(10000) // far beyond max flow rate
	assert.Equal(t, 100.0, td.StopperRodPositionPercent())
}
