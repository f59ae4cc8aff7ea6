// Package trace records and reconstructs reflecting sampling trajectories.
//
// 🚀 What is trace?
//
//	The bookkeeping layer between raw geometry and the samplers:
//
//	  • Path — a sparse, integer-indexed record of a billiard-like track
//	    through the unit hypercube. Index 0 is the starting point and a
//	    unit index step always equals one unit of the original direction
//	    vector, no matter how many wall bounces happen in between. Any
//	    index between two recorded points can be reconstructed exactly by
//	    replaying the deterministic reflection stepping; the replay is done
//	    independently from both sides and must agree, which doubles as a
//	    built-in consistency check of the reflection bookkeeping.
//
//	  • ContourPath — a Path constrained to a likelihood contour: candidate
//	    points are evaluated exactly once against the threshold Lmin and
//	    only stored when they lie above it. It also estimates the
//	    reflection normal from the region's live-point spheres in whitened
//	    space, deliberately ignoring the travel direction so the reflection
//	    rule stays time-reversible.
//
// ⚙️ Contracts:
//
//	Replay disagreements panic — they mean the path is no longer a single
//	consistent trajectory. Rejected candidates are ordinary control flow
//	and never error.
//
// A Path lives for one sampling direction and is discarded with it; the
// wrapping ContourPath shares that lifetime.
package trace
