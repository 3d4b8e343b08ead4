package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatStatus_String(t *testing.T) {
	assert.Equal(t, "New", HeatNew.String())
	assert.Equal(t, "Cast", HeatCast.String())
	assert.Equal(t, "Unknown", HeatStatus(99).String())
}

func TestNewHeat_FieldEquivalence(t *testing.T) {
	h := NewHeat(42, "heat-42", 20000, "304")
	assert.Equal(t, 42, h.ID)
	assert.Equal(t, "heat-42", h.Name)
	assert.Equal(t, 20000.0, h.NetWeightKg)
	assert.Equal(t, "304", h.SteelGradeID)
	assert.Equal(t, HeatNew, h.Status)
}

func TestHeat_AdvanceTo_MonotonicallyIncreasing(t *testing.T) {
	h := NewHeat(1, "heat-1", 20000, "304")
	require.NoError(t, h.AdvanceTo(HeatNext))
	require.NoError(t, h.AdvanceTo(HeatPouring))
	require.NoError(t, h.AdvanceTo(HeatClosed))
	assert.Equal(t, HeatClosed, h.Status)
}

func TestHeat_AdvanceTo_RejectsNonMonotonic(t *testing.T) {
	h := NewHeat(1, "heat-1", 20000, "304")
	require.NoError(t, h.AdvanceTo(HeatPouring))

	err := h.AdvanceTo(HeatNext)
	require.Error(t, err)
	var stateErr *InvalidStateTransitionError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, HeatPouring, h.Status)
}

func TestHeat_AdvanceTo_RejectsSameStatus(t *testing.T) {
	h := NewHeat(1, "heat-1", 20000, "304")
	require.NoError(t, h.AdvanceTo(HeatNext))
	err := h.AdvanceTo(HeatNext)
	assert.Error(t, err)
}

func TestHeat_SetCastLengthAtStart_SetOnce(t *testing.T) {
	h := NewHeat(1, "heat-1", 20000, "304")
	h.SetCastLengthAtStart(10.5)
	h.SetCastLengthAtStart(99.0)
	assert.Equal(t, 10.5, h.CastLengthAtStartMeters)
}

func TestHeatFragment_Clone(t *testing.T) {
	f := HeatFragment{HeatID: 1, WeightKg: 500, SteelGradeID: "304", LiquidusC: 1450, TargetSuperheatC: 25}
	clone := f.Clone()
	assert.Equal(t, f, clone)
}
