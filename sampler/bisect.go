package sampler

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flatnuts/geom"
	"github.com/katalvlaran/flatnuts/trace"
)

// BisectExpander is the jump-ahead variant of Expander: instead of paying
// one likelihood evaluation per integer step, it tests the target index
// directly and, on rejection, bisects the interval between the last known
// inside index and the target to find the exact integer boundary where
// acceptance first fails — O(log distance) evaluations instead of O(distance).
type BisectExpander struct {
	*Expander
}

// NewBisectExpander returns a bisecting expansion policy over cp.
func NewBisectExpander(cp *trace.ContourPath) *BisectExpander {
	return &BisectExpander{Expander: NewExpander(cp)}
}

// bisect locates the first integer offset (relative to the frontier point
// at startU/startV) where acceptance fails. left must be inside, right
// outside; both invariants are maintained throughout. Accepted midpoints
// are recorded at offset+their relative index. Returns the outside offset.
//
// Complexity: O(log |right−left|) likelihood evaluations.
func (b *BisectExpander) bisect(left int, startU, startV []float64, right, offset int) int {
	for {
		mid := (left + right) / 2
		if mid == left || mid == right {
			return right
		}
		u, v := geom.StepWithReflection(startU, startV, float64(mid), nil)
		if b.cp.TryAccept(mid+offset, u, v) {
			left = mid
		} else {
			right = mid
		}
	}
}

// ExpandTo grows the path toward index i (positive forward, otherwise
// backward), jumping ahead when possible.
//
// Outline:
//  1. Test i directly with one extrapolate + accept; done when accepted.
//  2. Otherwise bisect between the frontier (inside) and i (outside) to the
//     first failing integer index.
//  3. Apply the one-shot reflect-and-retry there. After a successful
//     reflection, recurse toward i only when continueAfterReflection is set
//     or the reflected direction still advances (positive dot product with
//     the pre-reflection direction); a failed retry closes the side.
func (b *BisectExpander) ExpandTo(i int, continueAfterReflection bool) {
	path := b.cp.Path

	var start trace.Point
	sign := 1.0
	forward := i > 0
	if forward {
		start = path.Hi()
		if start.Index >= i {
			return // already materialized
		}
	} else {
		start = path.Lo()
		if start.Index <= i {
			return
		}
		sign = -1
	}
	if (forward && !path.ForwardOpen) || (!forward && !path.BackwardOpen) {
		// stuck: the caller cannot rely on this index being filled
		return
	}

	u, v := path.Extrapolate(i)
	if b.cp.TryAccept(i, u, v) {
		return
	}

	// frontier offset 0 is inside, offset deltai is outside
	deltai := i - start.Index
	outside := b.bisect(0, start.U, start.V, deltai, start.Index)
	b.nreflections++

	uj, vj := geom.StepWithReflection(start.U, start.V, float64(outside), nil)
	oriented := append([]float64(nil), vj...)
	floats.Scale(sign, oriented)
	vk := b.reflectAt(uj, oriented)
	floats.Scale(sign, vk)
	uk, vk := geom.StepWithReflection(uj, vk, sign, nil)
	b.nreflections++

	if !b.cp.TryAccept(outside+start.Index, uk, vk) {
		if forward {
			path.ForwardOpen = false
		} else {
			path.BackwardOpen = false
		}

		return
	}
	if continueAfterReflection || floats.Dot(vk, vj) > 0 {
		b.ExpandTo(i, continueAfterReflection)
	}
}
