package ephem

import (
	"time"

	"github.com/thurmanmarka/lunarglide/internal/moon"
	"github.com/thurmanmarka/lunarglide/internal/sun"
)

// Analytic is the built-in low-precision model: a few dozen trigonometric
// terms, no external tables. Sun to ~0.01°, Moon to a few tenths of a degree.
type Analytic struct{}

// Name implements Ephemeris.
func (Analytic) Name() string { return NameAnalytic }

// Sun implements Ephemeris.
func (Analytic) Sun(t time.Time) State {
	eq := sun.Geocentric(t)
	return State{RA: eq.RA, Dec: eq.Dec, Distance: eq.Distance}
}

// Moon implements Ephemeris.
func (Analytic) Moon(t time.Time) State {
	eq := moon.Geocentric(t)
	return State{RA: eq.RA, Dec: eq.Dec, Distance: eq.Distance}
}
