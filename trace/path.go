package trace

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/flatnuts/geom"
)

// Replay agreement tolerances for the double-reconstruction check, matching
// the usual relative/absolute closeness split.
const (
	replayRTol = 1e-5
	replayATol = 1e-8
)

// Path is a sparse, integer-indexed record of a reflecting trajectory.
//
// Points are kept sorted by index; keys are unique but not contiguous.
// ForwardOpen and BackwardOpen start true and are permanently cleared by
// the samplers once extending that side fails irrecoverably.
//
// Invariant: replaying geom.StepWithReflection from any recorded point to
// the index of any other reproduces its position and direction within the
// replay tolerance — the path is one consistent trajectory, not a cloud.
type Path struct {
	points []Point // ascending by Index

	ForwardOpen  bool
	BackwardOpen bool
}

// NewPath starts a fresh path at index 0 with the given position, direction
// and evaluated log-likelihood.
func NewPath(u, v []float64, logL float64) *Path {
	p := &Path{ForwardOpen: true, BackwardOpen: true}
	p.Record(0, u, v, logL)

	return p
}

// Record inserts or overwrites the point at index i. The position and
// direction slices are copied.
func (p *Path) Record(i int, u, v []float64, logL float64) {
	pt := Point{
		Index:   i,
		U:       append([]float64(nil), u...),
		V:       append([]float64(nil), v...),
		LogL:    logL,
		HasLogL: true,
	}

	at := sort.Search(len(p.points), func(k int) bool { return p.points[k].Index >= i })
	if at < len(p.points) && p.points[at].Index == i {
		p.points[at] = pt

		return
	}
	p.points = append(p.points, Point{})
	copy(p.points[at+1:], p.points[at:])
	p.points[at] = pt
}

// Len returns the number of recorded points.
func (p *Path) Len() int { return len(p.points) }

// Lo returns the recorded point with the smallest index.
func (p *Path) Lo() Point {
	p.mustNonEmpty()

	return p.points[0]
}

// Hi returns the recorded point with the largest index.
func (p *Path) Hi() Point {
	p.mustNonEmpty()

	return p.points[len(p.points)-1]
}

// At returns the recorded point at exactly index i, if any.
func (p *Path) At(i int) (Point, bool) {
	at := sort.Search(len(p.points), func(k int) bool { return p.points[k].Index >= i })
	if at < len(p.points) && p.points[at].Index == i {
		return p.points[at], true
	}

	return Point{}, false
}

// Interpolate resolves the point at index i.
//
//   - An exact hit returns the stored point with onPath=true.
//   - If no recorded point exists beyond i on a permanently closed side,
//     the nearest recorded point is returned with onPath=false: the logical
//     index does not physically exist.
//   - Otherwise i is reconstructed by replaying the reflection stepping
//     independently from the nearest recorded points below and above. The
//     two replays must agree within tolerance — disagreement panics, since
//     it means the reflection bookkeeping is broken. Reconstructed points
//     carry no likelihood (HasLogL=false).
//
// ErrOutsidePath is returned when i lies beyond the recorded range on a
// side that is still open; the caller must extend the path instead.
//
// Complexity: O(log n) lookup plus O(|i−j|) replay.
func (p *Path) Interpolate(i int) (Point, bool, error) {
	p.mustNonEmpty()

	at := sort.Search(len(p.points), func(k int) bool { return p.points[k].Index >= i })
	hasAbove := at < len(p.points)
	hasBelow := at > 0 || (hasAbove && p.points[at].Index == i)

	if hasAbove && p.points[at].Index == i {
		return p.points[at], true, nil
	}

	// the index is beyond a closed side: clamp to the nearest real point
	if !hasAbove && !p.ForwardOpen {
		return p.points[len(p.points)-1], false, nil
	}
	if !hasBelow && !p.BackwardOpen {
		return p.points[0], false, nil
	}
	if !hasAbove || !hasBelow {
		return Point{}, false, ErrOutsidePath
	}

	j := p.points[at-1]
	k := p.points[at]

	// double reconstruction: forward from below, backward from above
	u1, v1 := geom.StepWithReflection(j.U, j.V, float64(i-j.Index), nil)
	u2, v2 := geom.StepWithReflection(k.U, k.V, float64(i-k.Index), nil)
	if !allClose(u1, u2) || !allClose(v1, v2) {
		panic(fmt.Sprintf(
			"trace: interpolation replay mismatch at index %d (from %d: u=%v v=%v; from %d: u=%v v=%v)",
			i, j.Index, u1, v1, k.Index, u2, v2,
		))
	}

	return Point{Index: i, U: u1, V: v1, LogL: math.NaN()}, true, nil
}

// Extrapolate replays the reflection stepping from the extreme recorded
// point toward index i, which must lie strictly beyond the known range on
// the corresponding side (non-negative i extends forward, negative i
// backward). The result is not recorded.
func (p *Path) Extrapolate(i int) (u, v []float64) {
	p.mustNonEmpty()

	var from Point
	if i >= 0 {
		from = p.Hi()
		if i-from.Index <= 0 {
			panic(fmt.Sprintf("trace: extrapolation target %d not beyond forward extreme %d", i, from.Index))
		}
	} else {
		from = p.Lo()
		if i-from.Index >= 0 {
			panic(fmt.Sprintf("trace: extrapolation target %d not beyond backward extreme %d", i, from.Index))
		}
	}

	return geom.StepWithReflection(from.U, from.V, float64(i-from.Index), nil)
}

func (p *Path) mustNonEmpty() {
	if len(p.points) == 0 {
		panic("trace: path has no recorded points")
	}
}

// allClose reports element-wise closeness |a−b| ≤ atol + rtol·|b|.
func allClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > replayATol+replayRTol*math.Abs(b[i]) {
			return false
		}
	}

	return true
}
