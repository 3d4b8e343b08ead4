package engine

// TurretArm indexes the two physical arms of the carousel (spec.md §4.5).
type TurretArm int

const (
	ArmOne TurretArm = 1
	ArmTwo TurretArm = 2
)

// Turret is a two-armed carousel: one arm is always in cast position, the
// other in load position. Rotation is modeled as a stepper advanced by the
// 1Hz driver (spec.md §9), not a real goroutine sleep.
type Turret struct {
	EventBus

	ladles map[TurretArm]*Ladle
	castArm TurretArm

	isRotating          bool
	rotationDuration    int64 // seconds
	rotationTicksLeft   int64
}

// NewTurret creates a turret with arm one in cast position.
func NewTurret() *Turret {
	return &Turret{
		ladles:  make(map[TurretArm]*Ladle),
		castArm: ArmOne,
	}
}

// CastArm returns the arm currently in cast position.
func (t *Turret) CastArm() TurretArm { return t.castArm }

// LoadArm returns the arm currently in load position.
func (t *Turret) LoadArm() TurretArm {
	if t.castArm == ArmOne {
		return ArmTwo
	}
	return ArmOne
}

// LadleInCastPosition returns the ladle mounted on the cast arm, or nil.
func (t *Turret) LadleInCastPosition() *Ladle { return t.ladles[t.castArm] }

// LadleOnArm returns the ladle mounted on arm, or nil.
func (t *Turret) LadleOnArm(arm TurretArm) *Ladle { return t.ladles[arm] }

// AddLadle installs l into the load arm. Fails with InvalidInput if l
// weighs less than 20000 kg, or InvalidStateTransition if the turret is
// currently rotating (spec.md §4.5).
func (t *Turret) AddLadle(l *Ladle) error {
	if l.NetWeightKg() < 20000 {
		return &InvalidInputError{Op: "Turret.AddLadle", Reason: "ladle weighs less than 20000 kg"}
	}
	if t.isRotating {
		return &InvalidStateTransitionError{Op: "Turret.AddLadle", Reason: "turret is rotating"}
	}
	t.ladles[t.LoadArm()] = l
	return nil
}

// RemoveLadle removes the ladle on arm. Fails with InvalidStateTransition
// if arm is the cast arm, or if arm holds no ladle (spec.md §4.5).
func (t *Turret) RemoveLadle(arm TurretArm) (*Ladle, error) {
	if arm == t.castArm {
		return nil, &InvalidStateTransitionError{Op: "Turret.RemoveLadle", Reason: "arm is in cast position"}
	}
	l, ok := t.ladles[arm]
	if !ok {
		return nil, &InvalidStateTransitionError{Op: "Turret.RemoveLadle", Reason: "arm holds no ladle"}
	}
	delete(t.ladles, arm)
	return l, nil
}

// StartRotate begins a rotation of the given duration (seconds, must be
// >= 10). No-op if already rotating or if the cast-position ladle is Open
// (spec.md §4.5). Returns an InvalidConfigError if duration < 10.
func (t *Turret) StartRotate(durationSeconds int64) error {
	if durationSeconds < 10 {
		return &InvalidConfigError{Op: "Turret.StartRotate", Reason: "rotationDuration must be >= 10 seconds"}
	}
	if t.isRotating {
		return nil
	}
	if cast := t.LadleInCastPosition(); cast != nil && cast.State == LadleOpen {
		return nil
	}
	t.isRotating = true
	t.rotationDuration = durationSeconds
	t.rotationTicksLeft = durationSeconds
	return nil
}

// RotateTick advances an in-progress rotation by one second, swapping the
// cast arm and emitting Rotated once the duration elapses.
func (t *Turret) RotateTick() {
	if !t.isRotating {
		return
	}
	t.rotationTicksLeft--
	if t.rotationTicksLeft <= 0 {
		t.castArm = t.LoadArm()
		t.isRotating = false
		t.Emit(EventRotated, t.castArm)
	}
}

// IsRotating reports whether a rotation is in progress.
func (t *Turret) IsRotating() bool { return t.isRotating }
