// Package geom provides the geometric primitives behind reflecting,
// likelihood-constrained trajectories in the unit hypercube [0,1]ⁿ.
//
// 🚀 What is geom?
//
//	The lowest layer of flatnuts:
//	  • IntersectUnitCube — slab-method ray/unit-cube crossing, with the
//	    set of axes hit (corners and edges report every tying axis)
//	  • StepWithReflection — billiard stepping: advance t units of the
//	    direction vector, bouncing specularly off cube walls, with
//	    optional periodic ("wrapped") axes
//	  • SphereTangent / ReflectVector / SphereLineIntersections — the
//	    sphere-side geometry used to reflect off region boundaries
//
// ⚙️ Contracts:
//
//	Origins must lie inside the cube, sphere-line intersections must
//	actually cross the sphere, and degenerate inputs indicate a bug in
//	the caller's path bookkeeping. Violations panic; they are never
//	recoverable data errors.
//
// Complexity: every function is O(n) in the dimension per wall crossing.
package geom
