package engine

// DefaultMoldDetails returns the mold geometry named in spec.md §4.4:
// fixed geometry, threshold 800mm, participating solely through base
// SteelContainer mechanics.
func DefaultMoldDetails(widthM, thicknessM float64) ContainerDetails {
	return ContainerDetails{
		ID:          "mold",
		WidthM:      widthM,
		DepthM:      thicknessM,
		ThresholdMm: 800,
	}
}

// Mold is a fixed-geometry SteelContainer; it adds no behavior beyond the
// base (spec.md §4.4).
type Mold struct {
	*SteelContainer
}

// NewMold creates a mold sized by the sequence's width/thickness.
func NewMold(widthM, thicknessM float64) *Mold {
	return &Mold{SteelContainer: NewSteelContainer(DefaultMoldDetails(widthM, thicknessM))}
}

// CrossSectionM2 is the mold's width*thickness, used to convert a strand
// advance into a mass removed from the mold (spec.md §4.11).
func (m *Mold) CrossSectionM2() float64 {
	return m.Details.WidthM * m.Details.DepthM
}
