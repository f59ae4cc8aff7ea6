package geom

import (
	"fmt"
	"math"
)

// cubeEps absorbs floating rounding when checking that a point produced by
// exact slab arithmetic still lies on the cube surface.
const cubeEps = 1e-6

// cloneVec returns an independent copy of v.
func cloneVec(v []float64) []float64 {
	return append([]float64(nil), v...)
}

// negated returns -v as a fresh slice.
func negated(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}

	return out
}

// mustInsideCube panics unless every coordinate of u lies in [0,1].
// Origin-outside-the-cube is a contract violation, not an input error.
func mustInsideCube(u []float64) {
	for i, x := range u {
		if !(x >= 0 && x <= 1) {
			panic(fmt.Sprintf("geom: origin outside unit cube: coordinate %d = %v", i, x))
		}
	}
}

// mustNearCube panics when a coordinate strays further than cubeEps outside
// [0,1], then clamps the slice into the cube in place.
func mustNearCube(u []float64) {
	for i, x := range u {
		if x < -cubeEps || x > 1+cubeEps || math.IsNaN(x) {
			panic(fmt.Sprintf("geom: point drifted off the unit cube: coordinate %d = %v", i, x))
		}
		if x < 0 {
			u[i] = 0
		} else if x > 1 {
			u[i] = 1
		}
	}
}
