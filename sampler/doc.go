// Package sampler turns a contour-constrained sampling path into a new
// likelihood-constrained sample via doubling-tree (No-U-Turn style)
// exploration.
//
// 🚀 What is sampler?
//
//	Three cooperating layers, composed rather than inherited:
//
//	  • Expander — the single-step frontier policy: extrapolate one unit
//	    step, test it against the contour, and on rejection reflect once
//	    off the estimated region normal and retry; a second failure closes
//	    that side of the path for good.
//	  • BisectExpander — the same policy with logarithmic-cost jump-ahead:
//	    the target index is tested directly, and on rejection the exact
//	    integer boundary of the contour is located by bisection before the
//	    one-shot reflect-and-retry.
//	  • NUTS — the doubling-tree driver: alternating coin-flipped forward
//	    and backward doublings, a recursive U-turn-detecting tree builder,
//	    and a final uniform draw from the validated index range.
//
// ⚙️ Determinism:
//
//	Every coin flip and index draw goes through a seedable source; the
//	same seed replays the identical episode. Same-seed reproducibility is
//	what the tests build on.
//
// The Sampler type wires these layers to the outer nested-sampling loop:
// it picks a starting live point, re-validates cached points against a
// possibly swapped region, runs episodes, and reports either "no
// independent sample yet" or the accepted point with its likelihood and
// evaluation cost.
package sampler
