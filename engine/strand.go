package engine

// StrandMode is the strand's operating mode (spec.md §4.6).
type StrandMode int

const (
	StrandIdle StrandMode = iota
	StrandDummyBarInsert
	StrandReadyToCast
	StrandCasting
	StrandTailout
)

// AdvancedPayload is emitted on every Strand.Advanced event.
type AdvancedPayload struct {
	IncrementMeters float64
}

// Strand tracks head/tail positions and total cast length, and owns the
// speed ramp. Its 1Hz ticker is modeled as a Tick() method called by the
// simulation driver (spec.md §9) rather than a real timer goroutine.
//
// HeadFromMoldMeters advances in every mode; TotalCastLength advances only
// in Casting mode; TailFromMoldMeters advances only in Tailout mode. These
// three are tracked as distinct fields and never derived from one another
// (DESIGN.md Open Question (c)).
type Strand struct {
	EventBus

	Mode StrandMode

	HeadFromMoldMeters float64
	TotalCastLength    float64
	TailFromMoldMeters float64

	speed     *SpeedController
	lastSpeed float64
}

// NewStrand creates an idle strand.
func NewStrand() *Strand {
	return &Strand{Mode: StrandIdle}
}

// Start sets the mode to Casting and installs the speed ramp that Tick
// will sample (spec.md §4.6).
func (s *Strand) Start(speed *SpeedController) {
	s.Mode = StrandCasting
	s.speed = speed
}

// Stop disposes the ticker's speed source, sets mode Idle, and zeroes
// speed (spec.md §4.6). Position fields are left untouched — they are the
// caster orchestrator's historical record.
func (s *Strand) Stop() {
	s.Mode = StrandIdle
	s.speed = nil
}

// SetMode transitions the strand to mode without touching position state
// (used for the Tailout transition, spec.md §4.11).
func (s *Strand) SetMode(mode StrandMode) { s.Mode = mode }

// CastSpeedMetersMin returns the strand's current instantaneous speed, or
// 0 if stopped.
func (s *Strand) CastSpeedMetersMin() float64 {
	if s.speed == nil {
		return 0
	}
	return s.lastSpeed
}

// Tick advances the strand by one 1Hz tick: samples the speed ramp,
// advances HeadFromMoldMeters always, and advances TotalCastLength or
// TailFromMoldMeters depending on mode, then emits Advanced (spec.md §4.6).
func (s *Strand) Tick() {
	if s.speed == nil {
		return
	}
	castSpeed := s.speed.Next()
	s.lastSpeed = castSpeed
	increment := castSpeed / 60

	s.HeadFromMoldMeters += increment
	switch s.Mode {
	case StrandCasting:
		s.TotalCastLength += increment
	case StrandTailout:
		s.TailFromMoldMeters += increment
	}
	s.Emit(EventAdvanced, AdvancedPayload{IncrementMeters: increment})
}
