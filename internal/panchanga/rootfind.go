package panchanga

import (
	"context"
	"fmt"

	"github.com/seenimoa/jyotish/pkg/utils"
)

// ErrNotConverged is returned when a boundary search exhausts its iteration
// budget before reaching the configured time tolerance.
var ErrNotConverged = fmt.Errorf("boundary search did not converge")

// angleFn evaluates the tracked angular quantity (elongation, longitude,
// or longitude sum) at a Julian Day, normalized to [0,360).
type angleFn func(jd float64) (float64, error)

// Search is a bounded boundary root-finder shared by all four angular
// panchanga elements. The tracked angle advances monotonically over the
// spans searched here, so a coarse forward scan brackets the crossing and
// bisection refines it.
type Search struct {
	ToleranceSec float64 // time tolerance of the returned instant
	MaxIter      int     // hard ceiling on refinement iterations
}

// coarseSteps is the number of samples in the bracketing scan.
const coarseSteps = 48

// NextCrossing finds the first instant after fromJD, within maxDays, at
// which f crosses the target angle (wrapped to [0,360)). Returns the
// crossing as a Julian Day. Fails with ErrNotConverged when no crossing is
// bracketed inside maxDays or refinement exceeds MaxIter.
func (s Search) NextCrossing(ctx context.Context, f angleFn, fromJD, target, maxDays float64) (float64, error) {
	step := maxDays / coarseSteps

	// Forward distance from the current angle to the target shrinks as the
	// angle advances and jumps toward 360 the moment the target is passed.
	v, err := f(fromJD)
	if err != nil {
		return 0, err
	}
	prevJD := fromJD
	prevDist := utils.Norm360(target - v)

	var lo, hi float64
	found := false
	for i := 1; i <= coarseSteps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		jd := fromJD + float64(i)*step
		v, err = f(jd)
		if err != nil {
			return 0, err
		}
		dist := utils.Norm360(target - v)
		if dist > prevDist {
			lo, hi = prevJD, jd
			found = true
			break
		}
		prevJD, prevDist = jd, dist
	}
	if !found {
		return 0, fmt.Errorf("no crossing of %.4f° within %.2f days of jd %.6f: %w",
			target, maxDays, fromJD, ErrNotConverged)
	}

	// Bisect: before the crossing the forward distance is small (<180),
	// after it the wrapped distance exceeds 180.
	tolDays := utils.JDSeconds(s.ToleranceSec)
	for i := 0; i < s.MaxIter; i++ {
		if hi-lo <= tolDays {
			return hi, nil
		}
		mid := (lo + hi) / 2
		v, err = f(mid)
		if err != nil {
			return 0, err
		}
		if utils.Norm360(target-v) > 180 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0, fmt.Errorf("crossing of %.4f° near jd %.6f: %d iterations exhausted at interval %.2fs: %w",
		target, lo, s.MaxIter, (hi-lo)*86400, ErrNotConverged)
}
