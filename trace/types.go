package trace

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrOutsidePath indicates an interpolation index beyond the recorded range
// on a side that is still open: the point is not materialized yet and the
// caller must expand the path first.
var ErrOutsidePath = errors.New("trace: index outside the recorded path range")

// Transform maps a unit-cube point to physical parameter space.
type Transform func(u []float64) []float64

// LogLikelihood evaluates the log-likelihood of physical parameters.
type LogLikelihood func(params []float64) float64

// Region is the bounding geometry built from the current live points,
// owned and maintained by the outer nested-sampling loop. It is read-only
// during a sampling episode and may be swapped between episodes, which
// makes any cached membership stale.
//
// Live points are exposed as dense matrices with one point per row, in raw
// unit-cube coordinates and in the whitened metric in which the per-point
// bounding spheres are isotropic with common squared radius MaxSqRadius.
type Region interface {
	// Inside reports, per row of points (cube-space coordinates), whether
	// the point lies inside the bounding geometry.
	Inside(points *mat.Dense) []bool

	// Whiten maps a cube-space point into the whitened metric; Unwhiten is
	// its inverse. Both return newly allocated slices the caller may keep
	// or modify.
	Whiten(u []float64) []float64
	Unwhiten(w []float64) []float64

	// Live and LiveWhitened return the live-point set, one point per row.
	Live() *mat.Dense
	LiveWhitened() *mat.Dense

	// MaxSqRadius is the common squared radius bound of the live-point
	// spheres in whitened space.
	MaxSqRadius() float64
}

// Point is one node of a sampling path: the integer index along the track,
// the position U in [0,1]ⁿ, the direction of travel V at that position, and
// the log-likelihood when it has been evaluated (HasLogL reports whether
// LogL is meaningful; reconstructed points carry no likelihood).
type Point struct {
	Index   int
	U       []float64
	V       []float64
	LogL    float64
	HasLogL bool
}
