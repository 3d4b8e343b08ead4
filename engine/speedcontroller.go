package engine

// SpeedController implements a linear ramp from startSpeed to targetSpeed
// over duration seconds (spec.md §4.7): a small stateful stepper that
// carries elapsed-tick state since the ramp depends on wall position in
// the sequence, not just the current call.
type SpeedController struct {
	startSpeed  float64
	targetSpeed float64
	duration    int64 // seconds

	elapsed int64
}

// NewSpeedController validates its parameters per spec.md §4.7 and
// constructs a ramp. Returns InvalidConfigError on out-of-range input.
func NewSpeedController(startSpeed, targetSpeed float64, duration int64) (*SpeedController, error) {
	if startSpeed < 0 {
		return nil, &InvalidConfigError{Op: "NewSpeedController", Reason: "startSpeed must be >= 0"}
	}
	if targetSpeed < 1 || targetSpeed > 10 {
		return nil, &InvalidConfigError{Op: "NewSpeedController", Reason: "targetSpeed must be in [1, 10] m/min"}
	}
	if duration < 0 || duration > 90 {
		return nil, &InvalidConfigError{Op: "NewSpeedController", Reason: "duration must be in [0, 90] seconds"}
	}
	return &SpeedController{startSpeed: startSpeed, targetSpeed: targetSpeed, duration: duration}, nil
}

// Next returns the ramp's speed for the current tick and advances elapsed
// time by one second. Once elapsed reaches duration, it returns
// targetSpeed indefinitely (spec.md §4.7); duration == 0 returns
// targetSpeed immediately.
func (s *SpeedController) Next() float64 {
	defer func() { s.elapsed++ }()

	if s.duration == 0 {
		return s.targetSpeed
	}
	if s.elapsed >= s.duration {
		return s.targetSpeed
	}
	frac := float64(s.elapsed) / float64(s.duration)
	if frac > 1 {
		frac = 1
	}
	return s.startSpeed + frac*(s.targetSpeed-s.startSpeed)
}
