package geom

import (
	"fmt"
	"math"
)

// IntersectUnitCube — ray / unit-cube crossing (slab method)
//
// Description:
//
//	Given a ray starting at origin (which must lie inside [0,1]ⁿ) with the
//	given direction, compute the distance t to the nearest forward crossing
//	of a cube face (forward=true) or the farthest-negative backward crossing
//	(forward=false), in units of the direction vector.
//
// Algorithm Outline:
//  1. Per axis i: m = 1/direction[i], n = m·(origin[i]−0.5), k = |m|/2.
//  2. Forward candidates are −n+k, backward candidates −n−k.
//  3. A zero direction component yields NaN (no constraint on that axis)
//     and is skipped by the NaN-aware min/max.
//  4. All axes attaining the extremal t are reported: a corner or edge hit
//     crosses several faces at once and must reflect all of them.
//
// Returns:
//
//	p    — the crossing point, clamped into [0,1] to absorb rounding
//	t    — signed crossing distance in units of direction
//	axes — indices of every axis achieving t
//
// Contract: origin inside the cube and direction non-degenerate; violations
// panic (they indicate broken path bookkeeping, see package doc).
//
// Complexity: O(n).
func IntersectUnitCube(origin, direction []float64, forward bool) (p []float64, t float64, axes []int) {
	mustInsideCube(origin)
	if len(direction) != len(origin) {
		panic(fmt.Sprintf("geom: dimension mismatch: origin %d vs direction %d", len(origin), len(direction)))
	}

	n := len(origin)
	ts := make([]float64, n)
	for i := 0; i < n; i++ {
		m := 1.0 / direction[i]
		off := m * (origin[i] - 0.5)
		half := math.Abs(m) * 0.5
		if forward {
			ts[i] = -off + half
		} else {
			ts[i] = -off - half
		}
	}

	// NaN-aware extremum: zero direction components produce NaN above and
	// constrain nothing.
	t = math.NaN()
	for _, ti := range ts {
		if math.IsNaN(ti) {
			continue
		}
		if math.IsNaN(t) || (forward && ti < t) || (!forward && ti > t) {
			t = ti
		}
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		panic(fmt.Sprintf("geom: direction %v has no finite cube crossing", direction))
	}

	for i, ti := range ts {
		if ti == t {
			axes = append(axes, i)
		}
	}

	p = make([]float64, n)
	for i := 0; i < n; i++ {
		p[i] = origin[i] + direction[i]*t
	}
	mustNearCube(p)

	return p, t, axes
}

// CubeCrossing bundles one ray/cube intersection: the crossing point, its
// signed distance in direction units, and every axis crossed there.
type CubeCrossing struct {
	P    []float64
	T    float64
	Axes []int
}

// BoxLineIntersection returns both crossings of the full line through origin
// with the unit cube: near (backward, t ≤ 0) and far (forward, t ≥ 0).
// Panics when the bookkeeping is broken and the line misses the cube.
func BoxLineIntersection(origin, direction []float64) (near, far CubeCrossing) {
	far.P, far.T, far.Axes = IntersectUnitCube(origin, direction, true)
	near.P, near.T, near.Axes = IntersectUnitCube(origin, direction, false)
	if near.T > far.T || far.T < 0 {
		panic(fmt.Sprintf("geom: line does not intersect the unit cube (tN=%v, tF=%v)", near.T, far.T))
	}

	return near, far
}

// StepWithReflection — billiard stepping inside the unit cube
//
// Description:
//
//	Advance t units of direction from origin. Whenever a cube face is
//	reached the direction component(s) of the crossed axis flip (specular
//	reflection off an axis-aligned wall) and stepping continues with the
//	remaining distance. Regardless of how many bounces occur, the total
//	path length is t·‖direction‖.
//
// Negative t reverses the direction, steps the positive distance, and
// negates the resulting direction, so a backward step is the exact mirror
// of the forward one.
//
// Wrapped axes:
//
//	An axis marked true in wrapped is periodic. Its first crossing wraps
//	the coordinate to the opposite face with the direction unchanged. A
//	second crossing of the same wrapped axis within one call terminates
//	early at that wall, which bounds the number of crossings per call when
//	the direction is near-tangent to a periodic axis. This early-exit rule
//	is load-bearing for the acceptance logic upstream; do not "repair" it.
//	A nil or empty slice means no axis is periodic.
//
// Returns the final position and the direction of travel at that position.
//
// Complexity: O(n) per wall crossing; crossings are bounded by t·‖direction‖
// (and by the wrapped-axis early exit).
func StepWithReflection(origin, direction []float64, t float64, wrapped []bool) (p, v []float64) {
	if t == 0 {
		return cloneVec(origin), cloneVec(direction)
	}
	if t < 0 {
		p, v = StepWithReflection(origin, negated(direction), -t, nil)

		return p, negated(v)
	}

	pos := cloneVec(origin)
	dir := cloneVec(direction)
	var crossed []bool
	if len(wrapped) > 0 {
		crossed = make([]bool, len(origin))
	}

	tleft := t
	for {
		hit, thit, axes := IntersectUnitCube(pos, dir, true)
		if tleft <= thit {
			// stopping before the next wall
			for i := range pos {
				pos[i] += tleft * dir[i]
			}
			mustNearCube(pos)

			return pos, dir
		}

		pos = hit
		if crossed == nil {
			for _, a := range axes {
				dir[a] = -dir[a]
			}
		} else {
			// a second crossing of an already-crossed wrapped axis ends
			// the step at this wall with the direction untouched
			for _, a := range axes {
				if crossed[a] && wrapped[a] {
					return pos, dir
				}
			}
			for _, a := range axes {
				crossed[a] = true
				if wrapped[a] {
					pos[a] = 1 - pos[a]
				} else {
					dir[a] = -dir[a]
				}
			}
		}
		tleft -= thit
	}
}
