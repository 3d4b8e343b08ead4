package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrand_Start_SetsModeCasting(t *testing.T) {
	s := NewStrand()
	sc, err := NewSpeedController(0, 6, 0)
	require.NoError(t, err)

	s.Start(sc)
	assert.Equal(t, StrandCasting, s.Mode)
}

func TestStrand_Tick_AlwaysAdvancesHead(t *testing.T) {
	s := NewStrand()
	sc, err := NewSpeedController(0, 6, 0)
	require.NoError(t, err)
	s.Start(sc)

	var advances int
	s.Subscribe(EventAdvanced, func(any) { advances++ })

	s.Tick()
	assert.InDelta(t, 0.1, s.HeadFromMoldMeters, 1e-9) // 6 m/min / 60
	assert.InDelta(t, 0.1, s.TotalCastLength, 1e-9)
	assert.Equal(t, 0.0, s.TailFromMoldMeters)
	assert.Equal(t, 1, advances)
}

func TestStrand_Tick_TailoutAdvancesTailNotTotal(t *testing.T) {
	s := NewStrand()
	sc, err := NewSpeedController(0, 6, 0)
	require.NoError(t, err)
	s.Start(sc)
	s.SetMode(StrandTailout)

	s.Tick()
	assert.Equal(t, 0.0, s.TotalCastLength)
	assert.Greater(t, s.TailFromMoldMeters, 0.0)
	assert.Greater(t, s.HeadFromMoldMeters, 0.0)
}

func TestStrand_Stop_ZeroesSpeedAndSetsIdle(t *testing.T) {
	s := NewStrand()
	sc, err := NewSpeedController(0, 6, 0)
	require.NoError(t, err)
	s.Start(sc)
	s.Tick()

	s.Stop()
	assert.Equal(t, StrandIdle, s.Mode)
	assert.Equal(t, 0.0, s.CastSpeedMetersMin())
}

func TestStrand_Tick_NoopWithoutSpeed(t *testing.T) {
	s := NewStrand()
	s.Tick()
	assert.Equal(t, 0.0, s.HeadFromMoldMeters)
}
