package engine

// ComputeFlowRate is a pure proportional controller: given the monitored
// level, the current flow, the container's max flow, a target level, and
// a tolerance percent, it returns the new, rate-limited, clamped flow
// (spec.md §4.10). It has no hidden state and is safe to call from any
// goroutine.
func ComputeFlowRate(monitoredLevelMm, currentFlow, maxFlow, targetLevelMm, tolerancePercent float64) float64 {
	toleranceMm := targetLevelMm * tolerancePercent / 100

	errorMm := monitoredLevelMm - targetLevelMm

	correctionFactor := 0.5
	if toleranceMm != 0 {
		if v := absF(errorMm) / toleranceMm; v > correctionFactor {
			correctionFactor = v
		}
	}

	correction := -correctionFactor * errorMm

	flowRateChangeLimit := 10.0
	if v := maxFlow * tolerancePercent / 100; v > flowRateChangeLimit {
		flowRateChangeLimit = v
	}

	target := currentFlow + correction
	adjusted := clamp(target, currentFlow-flowRateChangeLimit, currentFlow+flowRateChangeLimit)

	return clamp(adjusted, 0, maxFlow)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
