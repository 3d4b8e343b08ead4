package engine

import (
	"fmt"
	"math"
	"time"
)

// heatWeightKg is the fixed per-heat weight used by BuildSequence
// (spec.md §4.14).
const heatWeightKg = 20000

var aimChoicesMeters = []float64{4, 4.5, 5, 5.5, 6}

// epochForHeatIDs anchors Heat.ID generation to minutes-since-2025-01-01
// (spec.md §4.14).
var epochForHeatIDs = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// BuildSequence constructs a fresh Sequence with three heats drawn from
// catalog, per spec.md §4.14. torchLocationMeters enforces the "product max
// must leave room for one more cut" constraint. now anchors the
// sequence id and heat ids to wall-clock time.
func BuildSequence(catalog *Catalog, rng *PartitionedRNG, widthM, thicknessM, steelDensity, torchLocationMeters float64, now time.Time) (*Sequence, error) {
	if len(catalog.IDs()) == 0 {
		return nil, &InvalidConfigError{Op: "BuildSequence", Reason: "catalog has no grades"}
	}

	seq := NewSequence(now.Format("0601021504"), widthM, thicknessM, steelDensity)

	baseHeatID := int(now.Sub(epochForHeatIDs).Minutes())

	for i := 0; i < 3; i++ {
		gradeID := Choice(rng, SubsystemSchedule, catalog.IDs())

		aim, err := pickAimWithinTorchConstraint(rng, torchLocationMeters)
		if err != nil {
			return nil, err
		}
		minLen := aim * 0.9
		maxLen := aim * 1.1

		heatID := baseHeatID + i
		heat := NewHeat(heatID, fmt.Sprintf("heat-%d", heatID), heatWeightKg, gradeID)
		seq.Heats[heatID] = heat

		numProducts := int(math.Ceil(heatWeightKg / (widthM * thicknessM * aim * steelDensity)))
		for n := 1; n <= numProducts; n++ {
			productID := fmt.Sprintf("%s-H%d-%02d", seq.ID, heatID, n)
			p, err := NewProduct(seq.ID, n, productID, aim, minLen, maxLen)
			if err != nil {
				return nil, err
			}
			seq.Products.Enqueue(p)
		}
	}

	return seq, nil
}

// pickAimWithinTorchConstraint draws an aim length from aimChoicesMeters,
// resampling among the remaining candidates until one satisfies
// max < torchLocationMeters - 4 (spec.md §4.14 "Constraint"). Returns
// InvalidConfigError if no candidate satisfies it.
func pickAimWithinTorchConstraint(rng *PartitionedRNG, torchLocationMeters float64) (float64, error) {
	candidates := append([]float64(nil), aimChoicesMeters...)
	for len(candidates) > 0 {
		idx := rng.UniformInt(SubsystemSchedule, 0, len(candidates)-1)
		aim := candidates[idx]
		if aim*1.1 < torchLocationMeters-4 {
			return aim, nil
		}
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return 0, &InvalidConfigError{
		Op:     "BuildSequence",
		Reason: fmt.Sprintf("no aim length leaves room before torchLocation=%v", torchLocationMeters),
	}
}
