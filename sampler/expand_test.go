package sampler_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flatnuts/sampler"
	"github.com/katalvlaran/flatnuts/trace"
)

func newContour(loglike trace.LogLikelihood, lmin float64) *trace.ContourPath {
	region := &cubeRegion{live: mat.NewDense(1, 2, []float64{0.5, 0.5}), maxsq: 1}
	path := trace.NewPath([]float64{0.5, 0.5}, []float64{0.01, 0}, 0)

	return trace.NewContourPath(path, region, identity, loglike, lmin)
}

// TestExpander_ExpandTo_AllAccepted: with an unconstrained contour every
// step lands, one evaluation each, and the frontier reaches the target.
func TestExpander_ExpandTo_AllAccepted(t *testing.T) {
	cp := newContour(func([]float64) float64 { return 0 }, math.Inf(-1))
	e := sampler.NewExpander(cp)

	e.ExpandTo(5)
	assert.Equal(t, 5, cp.Path.Hi().Index, "forward frontier reaches the target")
	assert.Equal(t, 5, cp.Evals(), "one evaluation per step")
	assert.True(t, cp.Path.ForwardOpen, "nothing closed the forward side")

	e.ExpandTo(-3)
	assert.Equal(t, -3, cp.Path.Lo().Index, "backward frontier reaches the target")
	assert.Equal(t, 8, cp.Evals(), "three more evaluations")
}

// TestExpander_OneStepPositions: each accepted step advances exactly one
// unit of the direction vector.
func TestExpander_OneStepPositions(t *testing.T) {
	cp := newContour(func([]float64) float64 { return 0 }, math.Inf(-1))
	e := sampler.NewExpander(cp)

	require.True(t, e.ExpandOneStep(true), "first forward step")
	pt, ok := cp.Path.At(1)
	require.True(t, ok, "index 1 recorded")
	assert.InDeltaSlice(t, []float64{0.51, 0.5}, pt.U, 1e-12, "one unit of direction forward")

	require.True(t, e.ExpandOneStep(false), "first backward step")
	pt, ok = cp.Path.At(-1)
	require.True(t, ok, "index -1 recorded")
	assert.InDeltaSlice(t, []float64{0.49, 0.5}, pt.U, 1e-12, "one unit of direction backward")
}

// TestExpander_ClosesSideAfterFailedReflection: when both the direct step
// and the reflected retry land below the contour, the side closes for good
// and later expansion attempts are no-ops.
func TestExpander_ClosesSideAfterFailedReflection(t *testing.T) {
	// every candidate beyond the recorded start sits below the contour
	cp := newContour(func([]float64) float64 { return -10 }, -1)
	e := sampler.NewExpander(cp)

	assert.False(t, e.ExpandOneStep(true), "step and retry both fail")
	assert.False(t, cp.Path.ForwardOpen, "forward side permanently closed")
	assert.Equal(t, 2, cp.Evals(), "direct try plus one reflected retry")
	assert.Equal(t, 1, e.Reflections(), "exactly one reflection attempted")

	before := cp.Evals()
	e.ExpandTo(10)
	assert.Equal(t, before, cp.Evals(), "closed side spends no further evaluations")
	assert.True(t, cp.Path.BackwardOpen, "other side unaffected")
}

// TestExpander_ReflectionRecovers: a rejected step whose reflected retry
// lands back above the contour keeps the side open.
func TestExpander_ReflectionRecovers(t *testing.T) {
	// accept x < 0.505 only; the live-point sphere at (0.5,0.5) makes the
	// estimated normal point along -x, so the reflected step turns around
	cp := newContour(func(p []float64) float64 { return -p[0] }, -0.505)
	e := sampler.NewExpander(cp)

	require.True(t, e.ExpandOneStep(true), "reflected retry recovers")
	assert.True(t, cp.Path.ForwardOpen, "side stays open after recovery")
	assert.Equal(t, 2, cp.Evals(), "rejection plus accepted retry")

	pt, ok := cp.Path.At(1)
	require.True(t, ok, "index 1 recorded with the reflected state")
	assert.InDelta(t, 0.5, pt.U[0], 1e-9, "retry stepped back from the rejected point")
	assert.InDelta(t, -0.01, pt.V[0], 1e-9, "direction reflected to -x")
}
