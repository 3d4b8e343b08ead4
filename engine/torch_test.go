package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorch_Measure_FiresCutDoneAtAimLength(t *testing.T) {
	torch := NewTorch(10)
	p, err := NewProduct("seq", 1, "seq-1", 5, 4.5, 5.5)
	require.NoError(t, err)
	torch.SetNextProduct(p, false)

	var cut *Product
	torch.Subscribe(EventCutDone, func(payload any) { cut = payload.(*Product) })

	// Needs acc - torchLocation(10) >= aim(5), i.e. acc >= 15.
	for i := 0; i < 14; i++ {
		torch.Measure(1, 0)
		assert.Nil(t, cut)
	}
	torch.Measure(1, 0)

	require.NotNil(t, cut)
	assert.Equal(t, p, cut)
	assert.Equal(t, 5.0, cut.CutLengthMeters)
}

func TestTorch_Measure_SuppressedDuringOptimization(t *testing.T) {
	torch := NewTorch(10)
	p, err := NewProduct("seq", 1, "seq-1", 5, 4.5, 5.5)
	require.NoError(t, err)
	torch.SetNextProduct(p, false)
	torch.SetOptimizationInProgress(true)

	var fired bool
	torch.Subscribe(EventCutDone, func(any) { fired = true })

	for i := 0; i < 20; i++ {
		torch.Measure(1, 0)
	}
	assert.False(t, fired)
}

func TestTorch_Measure_SuppressedOnLastCutUntilTailPastTorch(t *testing.T) {
	torch := NewTorch(10)
	p, err := NewProduct("seq", 1, "seq-1", 5, 4.5, 5.5)
	require.NoError(t, err)
	torch.SetNextProduct(p, true)

	var fired bool
	torch.Subscribe(EventCutDone, func(any) { fired = true })

	for i := 0; i < 20; i++ {
		torch.Measure(1, 0) // tailPosition stays 0 <= torchLocation
	}
	assert.False(t, fired)

	torch.Measure(1, 11) // tail now past torch location
	assert.True(t, fired)
}

func TestTorch_ResetNextProduct_ClearsState(t *testing.T) {
	torch := NewTorch(10)
	p, err := NewProduct("seq", 1, "seq-1", 5, 4.5, 5.5)
	require.NoError(t, err)
	torch.SetNextProduct(p, true)
	torch.ResetNextProduct()

	assert.Equal(t, "", torch.NextProductID())
	assert.Equal(t, 0.0, torch.NextProductAimMeters())
}
