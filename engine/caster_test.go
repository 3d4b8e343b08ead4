package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngineConfig() EngineConfig {
	return EngineConfig{
		Caster: CasterConfiguration{
			TorchLocationMeters:      10,
			SteelDensity:             7850,
			TargetCastSpeedMetersMin: 6,
			SpeedRampDurationSeconds: 0,
		},
		Cooling: CoolingConfiguration{
			BaseFlowLps:     5,
			FlowPerSpeedLps: 1.2,
			Sections: []CoolingSectionConfig{
				{ID: "1", PositionFactor: 1.0, StartPosition: 0, EndPosition: 3},
			},
		},
		WidthMeters:     1.5,
		ThicknessMeters: 0.2,
	}
}

func TestCaster_Wire_TundishThresholdStartsLadleLoop(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)

	require.NoError(t, c.Tundish.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 6000}))

	assert.True(t, c.ladleToTundishLoopActive)
	assert.True(t, c.Tundish.IsPouring())
}

func TestCaster_Wire_TundishSteelPouredFeedsMold(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	require.NoError(t, c.Tundish.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 1000}))

	c.Tundish.RemoveSteel(500)

	assert.Equal(t, 500.0, c.Mold.NetWeightKg())
}

func TestCaster_Wire_MoldThresholdStartsStrandCasting(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)

	require.NoError(t, c.Mold.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 2000}))

	assert.Equal(t, StrandCasting, c.Strand.Mode)
	assert.True(t, c.tundishToMoldLoopActive)
}

func TestCaster_Wire_MoldEmptiedSetsStrandTailout(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	require.NoError(t, c.Mold.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 2000}))
	require.Equal(t, StrandCasting, c.Strand.Mode)

	c.Mold.RemoveSteel(2000)

	assert.Equal(t, StrandTailout, c.Strand.Mode)
}

func TestCaster_Wire_StrandAdvancedRemovesFromMoldAndActivatesCooling(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	require.NoError(t, c.Mold.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 2000}))
	before := c.Mold.NetWeightKg()

	c.Strand.Tick()

	assert.Less(t, c.Mold.NetWeightKg(), before)
	assert.Greater(t, c.Cooling.FlowLps("1"), 0.0)
}

func TestCaster_Wire_StrandStopsAndEmitsCastingFinishedPastTorchInTailout(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	require.NoError(t, c.Mold.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 2000}))
	c.Mold.RemoveSteel(2000) // empties the mold, sets Tailout

	var finished bool
	c.Subscribe(EventCastingFinished, func(any) { finished = true })

	// Speed is 6 m/min => 0.1m/tick; need TailFromMoldMeters > 10m, over
	// a hundred ticks.
	for i := 0; i < 110; i++ {
		c.Strand.Tick()
	}

	assert.True(t, finished)
	assert.Equal(t, StrandIdle, c.Strand.Mode)
}

func TestCaster_Wire_TorchCutDoneResetsStrandHead(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	c.Strand.HeadFromMoldMeters = 3.0

	p, err := NewProduct("seq", 1, "seq-1", 5, 4, 6)
	require.NoError(t, err)
	c.Torch.Emit(EventCutDone, p)

	assert.Equal(t, c.Torch.TorchLocationMeters(), c.Strand.HeadFromMoldMeters)
}

func TestCaster_Dispose_UnsubscribesHandlers(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	c.Dispose()

	require.NoError(t, c.Tundish.AddSteel(&HeatFragment{HeatID: 1, WeightKg: 6000}))

	assert.False(t, c.ladleToTundishLoopActive)
	assert.Equal(t, 0.0, c.Mold.NetWeightKg())
}

func TestCaster_Tick_RunsWithoutPanicBeforeAnyPour(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	c := NewCaster(testEngineConfig(), 1.5, 0.2, rng)
	assert.NotPanics(t, func() { c.Tick() })
}
