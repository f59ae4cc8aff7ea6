package geom_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flatnuts/geom"
)

// TestSphereTangent_PointsAtCenter: the outward normal at an edge point is
// the unit vector toward the sphere center.
func TestSphereTangent_PointsAtCenter(t *testing.T) {
	n := geom.SphereTangent([]float64{0, 0}, []float64{1, 0})
	assert.InDeltaSlice(t, []float64{-1, 0}, n, tol, "normal points from edge to center")

	n = geom.SphereTangent([]float64{0.5, 0.5}, []float64{0.5, 0.9})
	assert.InDeltaSlice(t, []float64{0, -1}, n, tol, "axis-aligned normal")
	assert.InDelta(t, 1, norm(n), tol, "normal is unit length")
}

// TestSphereTangent_DegeneratePanics: coincident points have no normal.
func TestSphereTangent_DegeneratePanics(t *testing.T) {
	assert.Panics(t, func() {
		geom.SphereTangent([]float64{0.5, 0.5}, []float64{0.5, 0.5})
	}, "edge point on the center must panic")
}

// TestReflectVector_Known pins simple reflections.
func TestReflectVector_Known(t *testing.T) {
	// normal orthogonal to v: v passes through unchanged
	assert.InDeltaSlice(t, []float64{1, 0}, geom.ReflectVector([]float64{1, 0}, []float64{0, 1}), tol,
		"orthogonal normal leaves v unchanged")
	// normal parallel to v: v flips
	assert.InDeltaSlice(t, []float64{-1, 0}, geom.ReflectVector([]float64{1, 0}, []float64{1, 0}), tol,
		"parallel normal negates v")
	// 45° wall swaps the components
	s := math.Sqrt(0.5)
	assert.InDeltaSlice(t, []float64{0, 1}, geom.ReflectVector([]float64{-1, 0}, []float64{s, s}), 1e-12,
		"diagonal normal swaps components")
}

// TestReflectVector_PreservesNorm is the property from the reflection law:
// ‖v − 2(v·n)n‖ = ‖v‖ for any unit normal n.
func TestReflectVector_PreservesNorm(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		dim := 1 + rng.Intn(6)
		v := make([]float64, dim)
		n := make([]float64, dim)
		for i := range v {
			v[i] = rng.NormFloat64() * 10
			n[i] = rng.NormFloat64()
		}
		nn := norm(n)
		if nn == 0 {
			continue
		}
		for i := range n {
			n[i] /= nn
		}

		out := geom.ReflectVector(v, n)
		require.InDelta(t, norm(v), norm(out), 1e-9, "reflection must preserve the norm (trial %d)", trial)
	}
}

// TestSphereLineIntersections_CenteredSphere: a unit sphere at the origin is
// crossed at ±1 along any unit direction.
func TestSphereLineIntersections_CenteredSphere(t *testing.T) {
	tpos, tneg := geom.SphereLineIntersections([]float64{1, 0}, []float64{0, 0}, 1)
	assert.InDelta(t, 1, tpos, tol, "positive crossing")
	assert.InDelta(t, -1, tneg, tol, "negative crossing")
}

// TestSphereLineIntersections_OffsetCenter: an offset orthogonal to the
// direction shrinks the chord symmetrically.
func TestSphereLineIntersections_OffsetCenter(t *testing.T) {
	tpos, tneg := geom.SphereLineIntersections([]float64{1, 0}, []float64{0, 0.5}, 1)
	want := math.Sqrt(0.75)
	assert.InDelta(t, want, tpos, tol, "positive crossing of the offset sphere")
	assert.InDelta(t, -want, tneg, tol, "negative crossing of the offset sphere")
}

// TestSphereLineIntersections_MissPanics: a line that misses the sphere is a
// contract violation.
func TestSphereLineIntersections_MissPanics(t *testing.T) {
	assert.Panics(t, func() {
		geom.SphereLineIntersections([]float64{1, 0}, []float64{0, 5}, 1)
	}, "missing the sphere must panic")
}

// norm is the Euclidean norm, local to the tests.
func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}

	return math.Sqrt(s)
}
