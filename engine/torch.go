package engine

// Torch consumes strand advances and fires cut events when the next
// product's aim length is reached (spec.md §4.8).
type Torch struct {
	EventBus

	torchLocationMeters float64

	acc float64

	nextProduct             *Product
	isLastCut               bool
	optimizationInProgress bool
}

// NewTorch creates a torch fixed at torchLocationMeters from the mold.
func NewTorch(torchLocationMeters float64) *Torch {
	return &Torch{torchLocationMeters: torchLocationMeters}
}

// TorchLocationMeters returns the torch's fixed position.
func (t *Torch) TorchLocationMeters() float64 { return t.torchLocationMeters }

// NextProductID returns the id of the product the torch is currently aimed
// at, or "" if none is set.
func (t *Torch) NextProductID() string {
	if t.nextProduct == nil {
		return ""
	}
	return t.nextProduct.ProductID
}

// NextProductAimMeters returns the aim length of the product the torch is
// currently aimed at, or 0 if none is set.
func (t *Torch) NextProductAimMeters() float64 {
	if t.nextProduct == nil {
		return 0
	}
	return t.nextProduct.LengthAimMeters
}

// SetNextProduct installs the product the torch is aiming to cut next.
func (t *Torch) SetNextProduct(p *Product, isLast bool) {
	t.nextProduct = p
	t.isLastCut = isLast
}

// ResetNextProduct clears the aimed-at product (the schedule is empty).
func (t *Torch) ResetNextProduct() {
	t.nextProduct = nil
	t.isLastCut = false
}

// SetOptimizationInProgress toggles the gate that suppresses Measure while
// the cut scheduler is reshaping the remaining queue (spec.md §4.8 and the
// Open Question resolution in DESIGN.md — the orchestrator must clear this
// itself; Torch never clears it on its own).
func (t *Torch) SetOptimizationInProgress(inProgress bool) { t.optimizationInProgress = inProgress }

// Measure accumulates increment strand-meters since the last cut and fires
// CutDone once the accumulated measured length reaches the next product's
// aim length (spec.md §4.8).
func (t *Torch) Measure(increment, tailPositionMeters float64) {
	t.acc += increment

	if t.optimizationInProgress {
		return
	}
	if t.isLastCut && tailPositionMeters <= t.torchLocationMeters {
		return
	}

	measCutLength := t.acc - t.torchLocationMeters
	if measCutLength < 0 {
		measCutLength = 0
	}

	if t.nextProduct != nil && measCutLength >= t.nextProduct.LengthAimMeters {
		t.nextProduct.CutLengthMeters = measCutLength
		t.acc = t.torchLocationMeters
		done := t.nextProduct
		t.Emit(EventCutDone, done)
	}
}
