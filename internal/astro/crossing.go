package astro

import (
	"errors"
	"math"
	"time"
)

// ElevationFunc returns an elevation in degrees at time t.
type ElevationFunc func(t time.Time) float64

// Crossing is one passage of an elevation function through a threshold.
type Crossing struct {
	Time   time.Time
	Rising bool // true when the elevation goes from below to above
}

// Errors for sampled scans.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for crossing scan")
	ErrInvalidStep         = errors.New("scan step must be positive")
)

// crossingTolerance bounds the bisection refinement of a crossing.
const crossingTolerance = time.Millisecond

// ScanCrossings samples fn over [start, end] every step and returns every
// crossing of threshold in chronological order. Each bracketing pair is
// refined by bisection, so the result is exact to a millisecond provided fn
// is monotonic between neighboring samples.
//
// It is a brute-force reference independent of the closed-form solvers.
func ScanCrossings(fn ElevationFunc, start, end time.Time, step time.Duration, threshold float64) ([]Crossing, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	if end.Sub(start) < 2*step {
		return nil, ErrInsufficientSamples
	}

	var out []Crossing
	prevT := start
	prevEl := fn(start)
	for t := start.Add(step); !t.After(end); t = t.Add(step) {
		el := fn(t)
		switch {
		case prevEl <= threshold && el > threshold:
			out = append(out, Crossing{Time: refineCrossing(fn, prevT, t, prevEl, el, threshold), Rising: true})
		case prevEl > threshold && el <= threshold:
			out = append(out, Crossing{Time: refineCrossing(fn, prevT, t, prevEl, el, threshold), Rising: false})
		}
		prevT, prevEl = t, el
	}
	return out, nil
}

// refineCrossing narrows the bracket [t1, t2] around the threshold crossing.
func refineCrossing(fn ElevationFunc, t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	rising := el2 > el1
	for t2.Sub(t1) > crossingTolerance {
		mid := t1.Add(t2.Sub(t1) / 2)
		above := fn(mid) > threshold
		if above == rising {
			t2 = mid
		} else {
			t1 = mid
		}
	}
	return interpolateCrossing(t1, t2, fn(t1), fn(t2), threshold)
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 1e-12 {
		return t1
	}

	fraction := (threshold - el1) / (el2 - el1)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// Culmination finds the time and value of the maximum of fn over
// [start, end] by sampling every step and refining the best sample with a
// parabola through its neighbors.
func Culmination(fn ElevationFunc, start, end time.Time, step time.Duration) (time.Time, float64) {
	if step <= 0 || end.Before(start) {
		return start, fn(start)
	}

	bestT := start
	bestEl := fn(start)
	for t := start.Add(step); !t.After(end); t = t.Add(step) {
		if el := fn(t); el > bestEl {
			bestT, bestEl = t, el
		}
	}

	prevT, nextT := bestT.Add(-step), bestT.Add(step)
	if prevT.Before(start) || nextT.After(end) {
		return bestT, bestEl
	}

	// Parabola y = a*x^2 + b*x + c through x = -1, 0, 1
	y0, y1, y2 := fn(prevT), bestEl, fn(nextT)
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return bestT, bestEl
	}

	x := -b / (2 * a)
	if x < -1 {
		x = -1
	} else if x > 1 {
		x = 1
	}
	return bestT.Add(time.Duration(float64(step) * x)), a*x*x + b*x + c
}
