package engine

import "fmt"

// minCutLengthMeters is the global minimum viable cut length (spec.md §4.13).
const minCutLengthMeters = 4.0

// Optimize reshapes the remaining product queue against a residual strand
// length (spec.md §4.13). It is a pure function: the input queue is never
// mutated, and the result is a brand-new slice (spec.md §9 "Optimizer side
// effects" — copy on write). If the reshaped output would be empty, the
// input is returned unchanged (copied).
//
// Tie-break resolution: once R reaches exactly 0 the loop stops
// immediately — the shrink-then-tail branch only ever fires for a strictly
// positive remainder below the 4m floor, never to "clean up" an exact
// multiple.
func Optimize(sequenceID string, steelInStrand float64, inputQueue []*Product) []*Product {
	pool, acc := buildPool(inputQueue, steelInStrand)
	pool = extendPool(sequenceID, pool, acc, steelInStrand)

	output := runMainLoop(sequenceID, steelInStrand, pool)

	if len(output) == 0 {
		out := make([]*Product, len(inputQueue))
		for i, p := range inputQueue {
			out[i] = p.Clone()
		}
		return out
	}
	return output
}

// buildPool copies from inputQueue in order until the accumulated aim
// length first exceeds steelInStrand, including that product (spec.md
// §4.13 step 1). Returns the pool and its accumulated aim total.
func buildPool(inputQueue []*Product, steelInStrand float64) ([]*Product, float64) {
	var pool []*Product
	var acc float64
	for _, p := range inputQueue {
		pool = append(pool, p.Clone())
		acc += p.LengthAimMeters
		if acc > steelInStrand {
			break
		}
	}
	return pool, acc
}

// extendPool appends synthetic clones of the last pooled product, marked
// unplanned, while the pool's accumulated aim total remains below
// steelInStrand (spec.md §4.13 step 2).
func extendPool(sequenceID string, pool []*Product, acc, steelInStrand float64) []*Product {
	syn := 0
	for acc < steelInStrand && len(pool) > 0 {
		last := pool[len(pool)-1]
		syn++
		clone := last.Clone()
		clone.Planned = false
		clone.CutLengthMeters = 0
		clone.ProductID = fmt.Sprintf("%s-%02d", sequenceID, syn)
		pool = append(pool, clone)
		acc += clone.LengthAimMeters
	}
	return pool
}

func newTailProduct(sequenceID string, aim float64) *Product {
	return &Product{
		SequenceID:      sequenceID,
		ProductID:       sequenceID + "-TAIL",
		Type:            ProductSlab,
		Planned:         false,
		LengthAimMeters: aim,
		LengthMinMeters: aim,
		LengthMaxMeters: aim,
	}
}

// runMainLoop implements spec.md §4.13 step 3.
func runMainLoop(sequenceID string, steelInStrand float64, pool []*Product) []*Product {
	var output []*Product
	r := steelInStrand
	idx := 0

	for r > 0 {
		if r < minCutLengthMeters {
			if len(output) > 0 {
				last := output[len(output)-1]
				last.LengthAimMeters -= minCutLengthMeters - r
				output = append(output, newTailProduct(sequenceID, minCutLengthMeters))
			}
			break
		}

		if idx >= len(pool) {
			break
		}
		p := pool[idx]
		idx++

		var last *Product
		if len(output) > 0 {
			last = output[len(output)-1]
		}

		switch {
		case r >= p.LengthAimMeters:
			cp := p.Clone()
			output = append(output, cp)
			r -= p.LengthAimMeters

		case r >= p.LengthMinMeters:
			cp := p.Clone()
			cp.LengthAimMeters = r
			output = append(output, cp)
			r = 0

		case last != nil && last.LengthMaxMeters > last.LengthAimMeters:
			added := last.LengthMaxMeters - last.LengthAimMeters
			last.LengthAimMeters = last.LengthMaxMeters
			r -= added

		default:
			output = append(output, newTailProduct(sequenceID, r))
			r = 0
		}
	}

	return output
}
