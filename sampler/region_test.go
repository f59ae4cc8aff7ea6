package sampler_test

import (
	"gonum.org/v1/gonum/mat"
)

// cubeRegion is a test region with identity whitening: membership is the
// whole unit cube, live points are given as rows.
type cubeRegion struct {
	live  *mat.Dense
	maxsq float64
}

func (r *cubeRegion) Inside(points *mat.Dense) []bool {
	n, dim := points.Dims()
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		inside := true
		for j := 0; j < dim; j++ {
			x := points.At(i, j)
			if x < 0 || x > 1 {
				inside = false

				break
			}
		}
		out[i] = inside
	}

	return out
}

func (r *cubeRegion) Whiten(u []float64) []float64   { return append([]float64(nil), u...) }
func (r *cubeRegion) Unwhiten(w []float64) []float64 { return append([]float64(nil), w...) }
func (r *cubeRegion) Live() *mat.Dense               { return r.live }
func (r *cubeRegion) LiveWhitened() *mat.Dense       { return r.live }
func (r *cubeRegion) MaxSqRadius() float64           { return r.maxsq }

// noneRegion rejects every point; used to exercise the no-viable-start path.
type noneRegion struct{ cubeRegion }

func (r *noneRegion) Inside(points *mat.Dense) []bool {
	n, _ := points.Dims()

	return make([]bool, n)
}

func identity(u []float64) []float64 { return append([]float64(nil), u...) }
