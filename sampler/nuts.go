package sampler

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flatnuts/trace"
)

const (
	// preExploreSteps is how far each side is materialized before the first
	// doubling, so early small trees do not pay expansion calls one by one.
	preExploreSteps = 10

	// safetyDepth is the tree depth after which the stuck check runs: once
	// the validated range already exceeds both physical path extremes, no
	// doubling can ever widen it again and the episode must stop.
	safetyDepth = 3
)

// endpoint is one end of the explored track: logical index plus the
// position and travel direction there.
type endpoint struct {
	index int
	u, v  []float64
}

// uTurn is the generalized no-U-turn criterion for a reflecting,
// non-Hamiltonian path: the span from the left to the right endpoint must
// keep a positive projection on both endpoint directions; once either
// projection is non-positive the explored track has started curving back
// on itself.
func uTurn(left, right endpoint) bool {
	span := make([]float64, len(left.u))
	floats.SubTo(span, right.u, left.u)

	return floats.Dot(span, left.v) <= 0 || floats.Dot(span, right.v) <= 0
}

// NUTS runs doubling-tree episodes on a contour path.
//
// Description:
//
//	Starting from index 0, the explored index range is doubled on a
//	coin-flipped side each iteration by building a binary sub-tree of the
//	current depth. A sub-tree that detects a U-turn stops contributing;
//	the episode ends when the full track U-turns or when the safety valve
//	detects that both sides are exhausted. The final sample is drawn
//	uniformly from the validated index range, resampling any index that
//	turned out not to physically exist near a closed side.
type NUTS struct {
	exp *BisectExpander
	rng *rand.Rand
}

// NewNUTS returns a doubling-tree sampler driving exp. A nil rng falls back
// to the deterministic default stream.
func NewNUTS(exp *BisectExpander, rng *rand.Rand) *NUTS {
	if rng == nil {
		rng = rngFromSeed(0)
	}

	return &NUTS{exp: exp, rng: rng}
}

// Run executes one full episode and returns the drawn point. The returned
// point carries its likelihood only when the drawn index was actually
// evaluated during exploration.
//
// Termination is guaranteed by the permanent side closures plus the
// safety valve: every iteration either widens the validated range, closes
// a side, or trips a stopping rule.
func (s *NUTS) Run() trace.Point {
	path := s.exp.Contour().Path
	start, ok := path.At(0)
	if !ok {
		panic("sampler: contour path has no starting point")
	}
	left := endpoint{index: 0, u: start.U, v: start.V}
	right := left

	// materialize a short stretch on both sides before doubling begins;
	// reflections here must not run past the first bounce
	s.exp.ExpandTo(-preExploreSteps, false)
	s.exp.ExpandTo(+preExploreSteps, false)

	lo, hi := 0, 0
	depth := 0
	for {
		var stop bool
		if s.rng.Intn(2) == 1 {
			s.exp.ExpandTo(left.index-(1<<depth), true)
			var subRight endpoint
			left, subRight, stop = s.buildTree(left, depth, true)
			if !stop {
				lo = min(lo, left.index)
				hi = max(hi, subRight.index)
			}
		} else {
			s.exp.ExpandTo(right.index+(1<<depth), true)
			var subLeft endpoint
			subLeft, right, stop = s.buildTree(right, depth, false)
			if !stop {
				lo = min(lo, subLeft.index)
				hi = max(hi, right.index)
			}
		}

		stop = stop || uTurn(left, right)
		depth++
		if depth > safetyDepth && lo < path.Lo().Index && hi > path.Hi().Index {
			// both ends of the tree passed the ends of the physical path:
			// stuck between two closed sides, stop doubling
			break
		}
		if stop {
			break
		}
	}

	return s.SampleChainPoint(lo, hi)
}

// buildTree recursively builds a sub-tree of the given depth on one side.
//
//   - depth 0: the single point one unit step beyond state, looked up via
//     interpolation (it may be a clamped point near a closed side).
//   - depth > 0: two depth−1 sub-trees; the second grows from the outer
//     endpoint of the first and is skipped entirely when the first already
//     stopped. The combined tree stops on either sub-stop, on a U-turn of
//     the combined endpoints, or when the two extreme directions oppose
//     each other.
//
// Recursion depth equals the tree height, logarithmic in path length.
func (s *NUTS) buildTree(state endpoint, depth int, backward bool) (left, right endpoint, stop bool) {
	path := s.exp.Contour().Path

	if depth == 0 {
		i := state.index + 1
		if backward {
			i = state.index - 1
		}
		pt, _, err := path.Interpolate(i)
		if err != nil {
			panic(fmt.Sprintf("sampler: tree leaf %d not materialized: %v", i, err))
		}
		leaf := endpoint{index: i, u: pt.U, v: pt.V}

		return leaf, leaf, false
	}

	left, right, stop = s.buildTree(state, depth-1, backward)
	if stop {
		return left, right, true
	}

	var stopb bool
	if backward {
		left, _, stopb = s.buildTree(left, depth-1, true)
	} else {
		_, right, stopb = s.buildTree(right, depth-1, false)
	}

	stop = stopb || uTurn(left, right) || floats.Dot(left.v, right.v) <= 0

	return left, right, stop
}

// SampleChainPoint draws uniformly from the index range [a,b] until the
// drawn index physically exists on the path. Index 0 is always recorded and
// always inside the range, so the loop terminates with probability one.
func (s *NUTS) SampleChainPoint(a, b int) trace.Point {
	path := s.exp.Contour().Path
	for {
		i := a + s.rng.Intn(b-a+1)
		pt, onPath, err := path.Interpolate(i)
		if err != nil {
			panic(fmt.Sprintf("sampler: validated index %d not materialized: %v", i, err))
		}
		if onPath {
			return pt
		}
	}
}
