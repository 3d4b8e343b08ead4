package engine

import "fmt"

// ProductType is the kind of product cut from the strand (spec.md §3).
type ProductType int

const (
	ProductSlab ProductType = iota
)

// Product is a scheduled cut (spec.md §3). 0 < Min <= Aim <= Max is
// enforced by NewProduct.
type Product struct {
	SequenceID  string
	CutNumber   int
	ProductID   string
	Type        ProductType
	Planned     bool

	LengthAimMeters float64
	LengthMinMeters float64
	LengthMaxMeters float64
	CutLengthMeters float64

	WidthM         float64
	ThicknessM     float64
	WeightKg       float64
	CastLengthStartMeters float64
}

// NewProduct validates 0 < min <= aim <= max and returns a planned Slab
// product. Returns InvalidConfigError otherwise (spec.md §3 invariant).
func NewProduct(sequenceID string, cutNumber int, productID string, aim, min, max float64) (*Product, error) {
	if !(0 < min && min <= aim && aim <= max) {
		return nil, &InvalidConfigError{
			Op:     "NewProduct",
			Reason: fmt.Sprintf("require 0 < min <= aim <= max, got min=%v aim=%v max=%v", min, aim, max),
		}
	}
	return &Product{
		SequenceID:      sequenceID,
		CutNumber:       cutNumber,
		ProductID:       productID,
		Type:            ProductSlab,
		Planned:         true,
		LengthAimMeters: aim,
		LengthMinMeters: min,
		LengthMaxMeters: max,
	}, nil
}

// Clone returns a deep copy of p (copy-on-write semantics for the
// optimizer, spec.md §9 "Optimizer side effects").
func (p *Product) Clone() *Product {
	cp := *p
	return &cp
}

// ProductQueue is an observable FIFO of scheduled products: a version
// counter plus an explicit subscribe, per spec.md §9's "Observable queue"
// design note. Mutations notify subscribers synchronously, once per
// mutation, after the mutation commits. Grounded on sim/queue.go's
// WaitQueue FIFO shape.
type ProductQueue struct {
	items   []*Product
	version uint64
	subs    []func(version uint64)
}

// NewProductQueue creates an empty observable queue.
func NewProductQueue() *ProductQueue { return &ProductQueue{} }

// Subscribe registers callback to run after every mutation.
func (q *ProductQueue) Subscribe(callback func(version uint64)) {
	q.subs = append(q.subs, callback)
}

func (q *ProductQueue) notify() {
	q.version++
	for _, s := range q.subs {
		s(q.version)
	}
}

// Enqueue appends p to the back of the queue and notifies subscribers.
func (q *ProductQueue) Enqueue(p *Product) {
	q.items = append(q.items, p)
	q.notify()
}

// Dequeue removes and returns the product at the front of the queue, or
// nil if empty. Notifies subscribers on a successful dequeue.
func (q *ProductQueue) Dequeue() *Product {
	if len(q.items) == 0 {
		return nil
	}
	p := q.items[0]
	q.items = q.items[1:]
	q.notify()
	return p
}

// Peek returns the product at the front of the queue without removing it,
// or nil if empty.
func (q *ProductQueue) Peek() *Product {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Len returns the number of products currently queued.
func (q *ProductQueue) Len() int { return len(q.items) }

// Snapshot returns a defensive copy of the queue's contents, head first.
func (q *ProductQueue) Snapshot() []*Product {
	out := make([]*Product, len(q.items))
	copy(out, q.items)
	return out
}

// Replace atomically swaps the queue's contents for items and notifies
// subscribers exactly once (spec.md §5 "Shared resources": the product
// queue is replaced atomically by the optimizer).
func (q *ProductQueue) Replace(items []*Product) {
	q.items = items
	q.notify()
}

// Version returns the current mutation version counter.
func (q *ProductQueue) Version() uint64 { return q.version }

// Sequence owns a heats map and the observable FIFO of scheduled products
// (spec.md §3).
type Sequence struct {
	ID           string
	WidthM       float64
	ThicknessM   float64
	SteelDensity float64

	Heats    map[int]*Heat
	Products *ProductQueue

	CutProducts []*Product
}

// NewSequence creates an empty sequence (heats are added by the schedule
// builder).
func NewSequence(id string, widthM, thicknessM, steelDensity float64) *Sequence {
	return &Sequence{
		ID:           id,
		WidthM:       widthM,
		ThicknessM:   thicknessM,
		SteelDensity: steelDensity,
		Heats:        make(map[int]*Heat),
		Products:     NewProductQueue(),
	}
}
