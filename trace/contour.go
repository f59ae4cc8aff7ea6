package trace

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flatnuts/geom"
)

// normalStep is the finite-difference step used to carry a whitened-space
// tangent back through the inverse whitening transform.
const normalStep = 1e-3

// ContourPath constrains a Path to the likelihood contour Lmin.
//
// Every candidate point is evaluated exactly once (transform + likelihood)
// and recorded only when its log-likelihood exceeds Lmin; rejected points
// are never stored. The region, transform and likelihood are borrowed from
// the outer loop, not owned.
type ContourPath struct {
	Path *Path

	Lmin float64

	region    Region
	transform Transform
	loglike   LogLikelihood

	ncalls int
}

// NewContourPath wraps path with the contour constraint Lmin against the
// given region, prior transform and likelihood.
func NewContourPath(path *Path, region Region, transform Transform, loglike LogLikelihood, lmin float64) *ContourPath {
	return &ContourPath{
		Path:      path,
		Lmin:      lmin,
		region:    region,
		transform: transform,
		loglike:   loglike,
	}
}

// Evals returns how many likelihood evaluations this contour path has spent.
func (c *ContourPath) Evals() int { return c.ncalls }

// Region returns the borrowed bounding region.
func (c *ContourPath) Region() Region { return c.region }

// TryAccept evaluates the candidate (i, u, v) against the contour: one
// transform + likelihood call, counted. Above the threshold the point is
// recorded on the path and accepted; below it nothing is stored. Rejection
// is ordinary control flow, never an error.
func (c *ContourPath) TryAccept(i int, u, v []float64) bool {
	logL := c.loglike(c.transform(u))
	c.ncalls++
	if logL > c.Lmin {
		c.Path.Record(i, u, v, logL)

		return true
	}

	return false
}

// EstimateNormal estimates the contour normal at a rejected point, used to
// reflect the direction of travel back into the threshold set.
//
// Outline:
//  1. Whiten the point and find every live-point sphere (whitened centers,
//     common squared radius bound) that contains it; if none do, fall back
//     to the nearest sphere.
//  2. Average the qualifying centers in whitened space and take the sphere
//     tangent from that mean center to the point.
//  3. Carry the tangent back to cube space through a small finite
//     difference of the inverse whitening transform and normalize.
//
// The previous travel direction is deliberately not an input: the estimate
// must not depend on it, or the reflection rule would break detailed
// balance.
//
// Complexity: O(nlive·n).
func (c *ContourPath) EstimateNormal(u []float64) []float64 {
	w := c.region.Whiten(u)
	lw := c.region.LiveWhitened()
	nlive, dim := lw.Dims()
	maxsq := c.region.MaxSqRadius()

	d2 := make([]float64, nlive)
	dmin := 0.0
	var nearby []int
	for r := 0; r < nlive; r++ {
		row := lw.RawRowView(r)
		s := 0.0
		for i := 0; i < dim; i++ {
			d := row[i] - w[i]
			s += d * d
		}
		d2[r] = s
		if r == 0 || s < dmin {
			dmin = s
		}
		if s < maxsq {
			nearby = append(nearby, r)
		}
	}
	if len(nearby) == 0 {
		// no sphere contains the point: use the nearest one(s)
		for r := 0; r < nlive; r++ {
			if d2[r] == dmin {
				nearby = append(nearby, r)
			}
		}
	}

	mean := make([]float64, dim)
	for _, r := range nearby {
		floats.Add(mean, lw.RawRowView(r))
	}
	floats.Scale(1/float64(len(nearby)), mean)

	tangent := geom.SphereTangent(mean, w)

	// finite difference through the inverse whitening transform
	base := c.region.Unwhiten(mean)
	shifted := append([]float64(nil), mean...)
	floats.AddScaled(shifted, normalStep, tangent)
	normal := c.region.Unwhiten(shifted)
	floats.Sub(normal, base)

	n := floats.Norm(normal, 2)
	if n == 0 {
		panic("trace: degenerate contour normal (inverse whitening collapsed the tangent)")
	}
	floats.Scale(1/n, normal)

	return normal
}
