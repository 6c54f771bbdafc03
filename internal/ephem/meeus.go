package ephem

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/thurmanmarka/lunarglide/internal/sun"
	"github.com/thurmanmarka/lunarglide/internal/timeutil"
)

// Meeus evaluates the full series of "Astronomical Algorithms" through
// github.com/soniakeys/meeus: ELP-2000/82 terms for the Moon (chapter 47)
// and the apparent solar position of chapter 25. Inputs are converted from
// UT to TT with timeutil.DeltaT (Meeus chapter 10).
type Meeus struct{}

// jde returns the Julian Ephemeris Day of t.
func jde(t time.Time) float64 {
	return julian.TimeToJD(t.UTC()) + timeutil.DeltaT(t)/86400
}

// Name implements Ephemeris.
func (Meeus) Name() string { return NameMeeus }

// Sun implements Ephemeris.
func (Meeus) Sun(t time.Time) State {
	jd := jde(t)

	α, δ := solar.ApparentEquatorial(jd)
	r := solar.Radius(base.J2000Century(jd))

	return State{
		RA:       α.Deg(),
		Dec:      δ.Deg(),
		Distance: r * sun.AU,
	}
}

// Moon implements Ephemeris.
func (Meeus) Moon(t time.Time) State {
	jd := jde(t)

	λ, β, Δ := moonposition.Position(jd)
	Δψ, Δε := nutation.Nutation(jd)
	ε := nutation.MeanObliquity(jd) + Δε

	sε, cε := ε.Sincos()
	α, δ := coord.EclToEq(λ+Δψ, β, sε, cε)

	return State{
		RA:       α.Deg(),
		Dec:      δ.Deg(),
		Distance: Δ,
	}
}
