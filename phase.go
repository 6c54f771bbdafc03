package lunarglide

import (
	"time"

	"github.com/thurmanmarka/lunarglide/internal/illum"
)

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time // the instant this phase is evaluated at
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	PhaseAngle float64   // Sun-Moon-Earth angle in degrees [0..180]
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true if waxing (illumination increasing), false if waning
	Name       string    // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt computes the Moon's phase at t with the analytic ephemeris.
// Phase is a global property (independent of observer location).
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	return MoonPhaseFrom(t, SourceAnalytic)
}

// MoonPhaseFrom computes the Moon's phase at t with the given source.
func MoonPhaseFrom(t time.Time, src Source) (MoonPhase, error) {
	eph, err := src.ephemeris()
	if err != nil {
		return MoonPhase{}, err
	}

	m, s := eph.Moon(t), eph.Sun(t)
	i := illum.PhaseAngle(m, s)
	f := illum.Fraction(i)
	waxing := illum.Waxing(m, s)

	return MoonPhase{
		Time:       t,
		Fraction:   f,
		PhaseAngle: i,
		Elongation: illum.Elongation(m, s),
		Waxing:     waxing,
		Name:       illum.PhaseName(f, waxing),
	}, nil
}

// MoonPhase returns the Moon's phase at t using the observer's source.
func (o *Observer) MoonPhase(t time.Time) (MoonPhase, error) {
	return MoonPhaseFrom(t, o.Source)
}
