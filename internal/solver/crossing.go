package solver

import (
	"time"
)

// Func returns a value (usually an altitude in degrees) at time t.
type Func func(t time.Time) float64

// Direction selects which crossings FindCrossing reports.
type Direction int

const (
	// Rising means the value increases through the target (rise, dawn).
	Rising Direction = iota
	// Setting means the value decreases through the target (set, dusk).
	Setting
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time
	OK   bool
}

// Search tunes FindCrossing. Steps is the number of samples across the
// window, Tolerance the width at which bisection stops.
type Search struct {
	Steps     int
	Tolerance time.Duration
}

// DaySearch samples every 30 minutes and bisects down to 30 seconds.
var DaySearch = Search{Steps: 48, Tolerance: 30 * time.Second}

// FindCrossing returns the first time in [start, end] where f crosses target
// in direction dir. It samples the window to bracket a sign change of
// f - target and then bisects the bracket.
func FindCrossing(f Func, start, end time.Time, target float64, dir Direction, s Search) Result {
	if !start.Before(end) {
		return Result{}
	}
	steps := s.Steps
	if steps < 2 {
		steps = 2
	}

	interval := end.Sub(start) / time.Duration(steps-1)

	prevT := start
	prevV := f(prevT) - target

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		v := f(t) - target

		if crosses(prevV, v, dir) {
			return bisect(f, prevT, t, prevV, target, dir, s.Tolerance)
		}

		prevT, prevV = t, v
	}

	return Result{}
}

func crosses(a, b float64, dir Direction) bool {
	if dir == Setting {
		return a > 0 && b <= 0
	}
	return a < 0 && b >= 0
}

func bisect(f Func, a, b time.Time, va, target float64, dir Direction, tol time.Duration) Result {
	if tol <= 0 {
		tol = time.Second
	}

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		vm := f(mid) - target

		if crosses(va, vm, dir) {
			b = mid
		} else {
			a, va = mid, vm
		}
	}

	return Result{Time: a.Add(b.Sub(a) / 2), OK: true}
}
