package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flatnuts/trace"
)

// whitenedAxisStep is the finite-difference step used to carry a whitened
// axis direction back through the inverse whitening transform.
const whitenedAxisStep = 1e-3

// DirectionProposal generates the initial travel direction of a sampling
// episode starting at u. One unit of path index corresponds to one unit of
// the returned vector, so its magnitude is the step size.
type DirectionProposal func(u []float64, region trace.Region, scale float64, rng *rand.Rand) []float64

// RandomDirection draws an isotropic cube-space direction of length scale.
func RandomDirection(u []float64, _ trace.Region, scale float64, rng *rand.Rand) []float64 {
	v := make([]float64, len(u))
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	floats.Scale(scale/floats.Norm(v, 2), v)

	return v
}

// CubeOrientedDirection picks one cube axis uniformly and travels a unit
// step along it. The scale is not used: axis steps pair with the doubling
// exploration, which discovers the usable extent by itself.
func CubeOrientedDirection(u []float64, _ trace.Region, _ float64, rng *rand.Rand) []float64 {
	v := make([]float64, len(u))
	v[rng.Intn(len(u))] = 1

	return v
}

// RegionOrientedDirection picks one axis of the whitened metric, carries it
// back to cube space through a finite difference of the inverse whitening
// transform, and rescales to length scale. Axes that are long in the
// region's own metric are favored over raw cube axes.
func RegionOrientedDirection(u []float64, region trace.Region, scale float64, rng *rand.Rand) []float64 {
	w := region.Whiten(u)
	w[rng.Intn(len(w))] += whitenedAxisStep

	v := region.Unwhiten(w)
	floats.Sub(v, u)
	floats.Scale(scale/floats.Norm(v, 2), v)

	return v
}

// RegionRandomDirection draws an isotropic direction in the whitened metric
// and carries it back to cube space, rescaled to length scale. This is the
// usual default: steps follow the shape of the live-point region.
func RegionRandomDirection(u []float64, region trace.Region, scale float64, rng *rand.Rand) []float64 {
	w := region.Whiten(u)
	for i := range w {
		w[i] += rng.NormFloat64()
	}

	v := region.Unwhiten(w)
	floats.Sub(v, u)
	floats.Scale(scale/floats.Norm(v, 2), v)

	return v
}
