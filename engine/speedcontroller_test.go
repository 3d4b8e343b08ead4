package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpeedController_RejectsOutOfRangeTargetSpeed(t *testing.T) {
	_, err := NewSpeedController(0, 0.5, 30)
	require.Error(t, err)
	var cfgErr *InvalidConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewSpeedController(0, 11, 30)
	assert.Error(t, err)
}

func TestNewSpeedController_RejectsOutOfRangeDuration(t *testing.T) {
	_, err := NewSpeedController(0, 5, 91)
	assert.Error(t, err)

	_, err = NewSpeedController(0, 5, -1)
	assert.Error(t, err)
}

func TestSpeedController_Next_ZeroDurationReturnsTargetImmediately(t *testing.T) {
	sc, err := NewSpeedController(0, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, sc.Next())
	assert.Equal(t, 6.0, sc.Next())
}

func TestSpeedController_Next_LinearRamp(t *testing.T) {
	sc, err := NewSpeedController(0, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, 0.0, sc.Next())
	for i := 0; i < 8; i++ {
		sc.Next()
	}
	assert.Equal(t, 9.0, sc.Next())
	assert.Equal(t, 10.0, sc.Next())
	assert.Equal(t, 10.0, sc.Next())
}
