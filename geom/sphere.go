package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SphereTangent returns the outward normal of a sphere centered at center
// whose surface passes through edge: the unit vector from edge toward
// center. Panics when the two points coincide (no normal exists).
func SphereTangent(center, edge []float64) []float64 {
	arrow := make([]float64, len(center))
	floats.SubTo(arrow, center, edge)
	n := floats.Norm(arrow, 2)
	if n == 0 {
		panic("geom: edge point coincides with sphere center")
	}
	floats.Scale(1/n, arrow)

	return arrow
}

// ReflectVector reflects v off a plane with the given unit normal:
//
//	v' = v − 2(v·normal)·normal
//
// The Euclidean norm of v is preserved exactly (up to floating rounding).
func ReflectVector(v, normal []float64) []float64 {
	out := cloneVec(v)
	floats.AddScaled(out, -2*floats.Dot(v, normal), normal)

	return out
}

// SphereLineIntersections — sphere / line crossing distances
//
// For a line through the coordinate origin along direction, returns the two
// signed distances along direction at which the sphere of the given radius
// centered at center is crossed.
//
// Contract: the line must actually cross the sphere (positive discriminant);
// a non-positive discriminant panics, since callers only invoke this for
// points known to sit inside the region spheres.
//
// Complexity: O(n).
func SphereLineIntersections(direction, center []float64, radius float64) (tpos, tneg float64) {
	loc := floats.Dot(direction, center)
	sq := floats.Dot(center, center)
	disc := loc*loc - sq + radius*radius
	if disc <= 0 {
		panic(fmt.Sprintf("geom: line misses the sphere (discriminant %v)", disc))
	}
	root := math.Sqrt(disc)

	return -loc + root, -loc - root
}
