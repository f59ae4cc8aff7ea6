package sampler

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/flatnuts/geom"
	"github.com/katalvlaran/flatnuts/trace"
)

// Expander grows a contour path one unit step at a time.
//
// Policy per step: extrapolate one unit of the direction vector beyond the
// frontier and test it against the contour. On rejection, reflect the
// direction off the estimated region normal at the rejected point, take
// exactly one more unit step from there, and test again. A second rejection
// permanently closes that side of the path — no further retries for the
// rest of the episode.
type Expander struct {
	cp           *trace.ContourPath
	nreflections int
}

// NewExpander returns a step-wise expansion policy over cp.
func NewExpander(cp *trace.ContourPath) *Expander {
	return &Expander{cp: cp}
}

// Contour returns the contour path being expanded.
func (e *Expander) Contour() *trace.ContourPath { return e.cp }

// Reflections returns how many reflect-and-retry attempts were made.
func (e *Expander) Reflections() int { return e.nreflections }

// reflectAt computes the reflected direction at a rejected point. The
// normal estimate ignores v on purpose (detailed balance); only the
// reflection itself uses it.
func (e *Expander) reflectAt(u, v []float64) []float64 {
	normal := e.cp.EstimateNormal(u)

	return geom.ReflectVector(v, normal)
}

// ExpandOneStep advances the forward (or backward) frontier by one index.
// It reports whether the side is still open afterwards.
func (e *Expander) ExpandOneStep(forward bool) bool {
	path := e.cp.Path

	var start trace.Point
	sign := 1.0
	if forward {
		start = path.Hi()
	} else {
		start = path.Lo()
		sign = -1
	}
	j := start.Index + int(sign)

	u, v := path.Extrapolate(j)
	if e.cp.TryAccept(j, u, v) {
		return true
	}

	// one-shot recovery: reflect at the rejected point and step once more
	oriented := append([]float64(nil), v...)
	floats.Scale(sign, oriented)
	vk := e.reflectAt(u, oriented)
	floats.Scale(sign, vk)
	uk, vk := geom.StepWithReflection(u, vk, sign, nil)
	e.nreflections++
	if e.cp.TryAccept(j, uk, vk) {
		return true
	}

	if forward {
		path.ForwardOpen = false
	} else {
		path.BackwardOpen = false
	}

	return false
}

// ExpandTo runs single steps toward index i (positive forward, otherwise
// backward) until the frontier reaches it or the side closes.
func (e *Expander) ExpandTo(i int) {
	path := e.cp.Path
	if i > 0 && path.ForwardOpen {
		for j := path.Hi().Index; j < i; j++ {
			if !e.ExpandOneStep(true) {
				break
			}
		}
	} else if i <= 0 && path.BackwardOpen {
		for j := path.Lo().Index; j > i; j-- {
			if !e.ExpandOneStep(false) {
				break
			}
		}
	}
}
