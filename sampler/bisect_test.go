package sampler_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flatnuts/sampler"
)

// TestBisectExpander_JumpAhead: with an unconstrained contour the target is
// reached with a single evaluation, independent of the distance.
func TestBisectExpander_JumpAhead(t *testing.T) {
	cp := newContour(func([]float64) float64 { return 0 }, math.Inf(-1))
	b := sampler.NewBisectExpander(cp)

	b.ExpandTo(16, true)
	assert.Equal(t, 16, cp.Path.Hi().Index, "frontier jumps straight to the target")
	assert.Equal(t, 1, cp.Evals(), "one evaluation regardless of distance")

	b.ExpandTo(-16, true)
	assert.Equal(t, -16, cp.Path.Lo().Index, "backward jump")
	assert.Equal(t, 2, cp.Evals(), "one more evaluation")
}

// TestBisectExpander_AlreadyMaterialized: a target inside the known range
// costs nothing.
func TestBisectExpander_AlreadyMaterialized(t *testing.T) {
	cp := newContour(func([]float64) float64 { return 0 }, math.Inf(-1))
	b := sampler.NewBisectExpander(cp)

	b.ExpandTo(8, true)
	before := cp.Evals()
	b.ExpandTo(4, true)
	assert.Equal(t, before, cp.Evals(), "already-covered target costs nothing")
}

// TestBisectExpander_FindsBoundary: when the target is rejected, bisection
// pins the first failing integer index, where the one-shot reflection then
// applies.
func TestBisectExpander_FindsBoundary(t *testing.T) {
	// accept x < 0.6: with steps of 0.01 from 0.5 the last inside index is
	// 9 (x=0.59) and the boundary index is 10 (x=0.60)
	cp := newContour(func(p []float64) float64 { return -p[0] }, -0.6)
	b := sampler.NewBisectExpander(cp)

	b.ExpandTo(32, true)

	boundary, ok := cp.Path.At(10)
	require.True(t, ok, "boundary index recorded by the reflected retry")
	assert.InDelta(t, 0.59, boundary.U[0], 1e-9, "retry stepped back inside the contour")
	assert.InDelta(t, -0.01, boundary.V[0], 1e-9, "direction reflected off the contour")

	// the reflected direction advances the walk away from the boundary, so
	// with continuation the frontier still reaches the logical target
	assert.Equal(t, 32, cp.Path.Hi().Index, "continuation reaches the target index")
	assert.True(t, cp.Path.ForwardOpen, "side stays open")
	assert.Less(t, cp.Evals(), 32, "bisection stays well below one evaluation per index")
}

// TestBisectExpander_ReflectionGate: without the continuation flag the walk
// stops at the boundary when the reflected direction no longer advances.
func TestBisectExpander_ReflectionGate(t *testing.T) {
	cp := newContour(func(p []float64) float64 { return -p[0] }, -0.6)
	b := sampler.NewBisectExpander(cp)

	b.ExpandTo(32, false)

	assert.Equal(t, 10, cp.Path.Hi().Index, "walk stops at the reflected boundary point")
	assert.True(t, cp.Path.ForwardOpen, "a successful retry does not close the side")
}

// TestBisectExpander_ClosesSideOnFailedRetry: a failed reflected retry
// permanently closes the side.
func TestBisectExpander_ClosesSideOnFailedRetry(t *testing.T) {
	cp := newContour(func([]float64) float64 { return -10 }, -1)
	b := sampler.NewBisectExpander(cp)

	b.ExpandTo(32, true)
	assert.False(t, cp.Path.ForwardOpen, "forward side closed")
	assert.Equal(t, 0, cp.Path.Hi().Index, "no point recorded beyond the start")

	before := cp.Evals()
	b.ExpandTo(64, true)
	assert.Equal(t, before, cp.Evals(), "closed side spends nothing")
}
