// Package flatnuts draws likelihood-constrained samples inside the unit
// hypercube by following piecewise-linear, reflection-aware trajectories,
// as used by nested-sampling Bayesian inference.
//
// 🚀 What is flatnuts?
//
//	A pure-Go engine for directional sampling above a likelihood contour:
//		• Box geometry: ray/unit-cube intersection & specular reflection
//		• Sphere geometry: tangent normals & plane reflections
//		• Sparse sampling paths: integer-indexed, lazily reconstructed tracks
//		• Contour paths: accept/reject against a likelihood threshold
//		• Step & bisection expansion: frontier growth with reflect-and-retry
//		• Doubling-tree (No-U-Turn style) episodes with a uniform final draw
//
// ✨ Why choose flatnuts?
//
//   - Deterministic – every random choice flows through a seedable source
//   - Rock-solid contracts – path replay is double-checked on every lookup
//   - Region-aware – reflections follow the live-point bounding geometry
//   - Composable – expansion policies are injected, not inherited
//
// Everything is organized under three subpackages:
//
//	geom/    — unit-cube and sphere geometry primitives
//	trace/   — sparse sampling paths and contour-constrained paths
//	sampler/ — step, bisection and doubling-tree samplers + the draw protocol
//
// Quick ASCII sketch of a reflecting track in the unit square:
//
//	    ┌────────────┐
//	    │   ↗3       │
//	    │  ↗   ↘2    │
//	    │ 0───1↗     │
//	    └────────────┘
//
//	a direction bounces off the cube walls and off the region boundary,
//	while indices keep counting in units of the original direction.
//
// The outer nested-sampling loop supplies the bounding region, the prior
// transform and the likelihood; flatnuts supplies everything between a
// starting live point and the next independent sample.
//
//	go get github.com/katalvlaran/flatnuts/sampler
package flatnuts
