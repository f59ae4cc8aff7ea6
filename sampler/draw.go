package sampler

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/flatnuts/trace"
)

var (
	// ErrBadScale indicates a non-positive or non-finite step scale.
	ErrBadScale = errors.New("sampler: Scale must be positive and finite")

	// ErrBadTracks indicates a negative episode count.
	ErrBadTracks = errors.New("sampler: Tracks must not be negative")

	// ErrNoViableStart indicates that no live point lies inside the current
	// region: the outer loop handed over an inconsistent region/live-point
	// pair.
	ErrNoViableStart = errors.New("sampler: no live point lies inside the current region")
)

// Options configures a Sampler.
//
// Fields:
//   - Scale     — length of the initial direction vector, i.e. the size of
//     one index step. Doubling exploration makes the episode fairly
//     insensitive to it.
//   - Seed      — seed for the deterministic RNG; 0 selects a fixed default.
//   - Tracks    — number of completed episodes before a sample counts as
//     independent; 0 selects 1. Tune upward until evidence estimates stop
//     drifting.
//   - Direction — initial direction proposal; nil selects
//     RegionRandomDirection.
type Options struct {
	Scale     float64
	Seed      int64
	Tracks    int
	Direction DirectionProposal
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{Scale: 0.1, Tracks: 1, Direction: RegionRandomDirection}
}

// Sample is an accepted draw: unit-cube coordinates, the transformed
// physical parameters, and the evaluated log-likelihood.
type Sample struct {
	U    []float64
	P    []float64
	LogL float64
}

type historyEntry struct {
	u    []float64
	logL float64
}

// Sampler drives doubling-tree episodes for the outer nested-sampling
// loop. Call Draw repeatedly with the current region and threshold until it
// produces a sample; each call runs at most one episode.
//
// A Sampler carries no per-episode path state between calls — only the
// resume point and its history, both re-validated against the (possibly
// replaced) region before reuse.
type Sampler struct {
	opts Options
	rng  *rand.Rand

	episodes uint64
	accepted int

	lastU   []float64
	lastL   float64
	hasLast bool
	history []historyEntry
}

// NewSampler validates opts and returns a ready Sampler.
func NewSampler(opts Options) (*Sampler, error) {
	if !(opts.Scale > 0) || math.IsInf(opts.Scale, 1) {
		return nil, ErrBadScale
	}
	if opts.Tracks < 0 {
		return nil, ErrBadTracks
	}
	if opts.Tracks == 0 {
		opts.Tracks = 1
	}
	if opts.Direction == nil {
		opts.Direction = RegionRandomDirection
	}

	return &Sampler{opts: opts, rng: rngFromSeed(opts.Seed)}, nil
}

// Draw runs one sampling episode above the threshold lmin.
//
// us holds the live points (one per row, cube space) with their
// log-likelihoods ls; transform and loglike are the prior transform and
// likelihood of the problem. The bounding region may have been rebuilt
// since the previous call — any cached resume point is re-validated against
// it before use.
//
// Returns (nil, evals, nil) while no independent sample is available yet,
// and (sample, evals, nil) once one is; evals counts the likelihood
// evaluations spent in this call.
func (s *Sampler) Draw(
	region trace.Region,
	lmin float64,
	us *mat.Dense,
	ls []float64,
	transform trace.Transform,
	loglike trace.LogLikelihood,
) (*Sample, int, error) {
	ui, li, ok := s.resumePoint(region, lmin)
	if !ok {
		var err error
		ui, li, err = s.freshStart(region, us, ls)
		if err != nil {
			return nil, 0, err
		}
		s.accepted = 0
		s.history = append(s.history, historyEntry{u: ui, logL: li})
	}

	v := s.opts.Direction(ui, region, s.opts.Scale, s.rng)

	path := trace.NewPath(ui, v, li)
	cp := trace.NewContourPath(path, region, transform, loglike, lmin)
	s.episodes++
	nuts := NewNUTS(NewBisectExpander(cp), deriveRNG(s.rng, s.episodes))

	pt := nuts.Run()
	evals := cp.Evals()

	logL := pt.LogL
	if !pt.HasLogL {
		// the drawn index was reconstructed, never evaluated
		logL = loglike(transform(pt.U))
		evals++
	}
	if logL < lmin {
		// an interpolated point may sit marginally below the contour;
		// drop it and report no progress rather than return a bad sample
		s.hasLast = false

		return nil, evals, nil
	}

	s.lastU = append([]float64(nil), pt.U...)
	s.lastL = logL
	s.hasLast = true
	s.history = append(s.history, historyEntry{u: s.lastU, logL: logL})

	s.accepted++
	if s.accepted < s.opts.Tracks {
		return nil, evals, nil
	}

	// independent sample: clear the episode chain
	s.accepted = 0
	s.hasLast = false
	s.history = nil

	return &Sample{
		U:    append([]float64(nil), pt.U...),
		P:    transform(pt.U),
		LogL: logL,
	}, evals, nil
}

// resumePoint returns the cached chain point when it still conforms to the
// current threshold and region, falling back to the most recent conforming
// history entry. A region swap between calls silently invalidates stale
// points here.
func (s *Sampler) resumePoint(region trace.Region, lmin float64) ([]float64, float64, bool) {
	if s.hasLast && s.lastL < lmin {
		s.hasLast = false
	}
	if s.hasLast && !insideOne(region, s.lastU) {
		s.hasLast = false
	}
	if s.hasLast {
		return s.lastU, s.lastL, true
	}

	for i := len(s.history) - 1; i >= 0; i-- {
		h := s.history[i]
		if h.logL >= lmin && insideOne(region, h.u) {
			s.lastU, s.lastL, s.hasLast = h.u, h.logL, true

			return h.u, h.logL, true
		}
	}

	return nil, 0, false
}

// freshStart picks a uniformly random live point that lies inside the
// region.
func (s *Sampler) freshStart(region trace.Region, us *mat.Dense, ls []float64) ([]float64, float64, error) {
	mask := region.Inside(us)
	var viable []int
	for i, in := range mask {
		if in {
			viable = append(viable, i)
		}
	}
	if len(viable) == 0 {
		return nil, 0, ErrNoViableStart
	}

	at := viable[s.rng.Intn(len(viable))]
	u := append([]float64(nil), us.RawRowView(at)...)

	return u, ls[at], nil
}

// insideOne runs the region membership test for a single point.
func insideOne(region trace.Region, u []float64) bool {
	row := mat.NewDense(1, len(u), append([]float64(nil), u...))

	return region.Inside(row)[0]
}
