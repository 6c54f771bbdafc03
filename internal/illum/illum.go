// Package illum computes the Moon's illuminated fraction from the geocentric
// places of the Sun and Moon.
package illum

import (
	"math"

	"github.com/thurmanmarka/lunarglide/internal/ephem"
	"github.com/thurmanmarka/lunarglide/internal/timeutil"
)

// Elongation returns the geocentric angular separation ψ between the Moon
// and the Sun, in degrees [0, 180]:
//
//	cos ψ = sin δ0 sin δ + cos δ0 cos δ cos(α0 − α)
func Elongation(moon, sun ephem.State) float64 {
	return timeutil.Rad2Deg(math.Acos(cosElongation(moon, sun)))
}

func cosElongation(moon, sun ephem.State) float64 {
	dec := timeutil.Deg2Rad(moon.Dec)
	dec0 := timeutil.Deg2Rad(sun.Dec)
	dRA := timeutil.Deg2Rad(sun.RA - moon.RA)

	c := math.Sin(dec0)*math.Sin(dec) + math.Cos(dec0)*math.Cos(dec)*math.Cos(dRA)
	// Clamp to handle numerical noise.
	return timeutil.Clamp(c, -1, 1)
}

// PhaseAngle returns the selenocentric Sun–Moon–Earth angle i in degrees
// [0, 180] (Meeus 48.3):
//
//	tan i = R sin ψ / (Δ − R cos ψ)
//
// where R is the Earth–Sun and Δ the Earth–Moon distance.
func PhaseAngle(moon, sun ephem.State) float64 {
	cpsi := cosElongation(moon, sun)
	spsi := math.Sqrt(1 - cpsi*cpsi)

	i := math.Atan2(sun.Distance*spsi, moon.Distance-sun.Distance*cpsi)
	return timeutil.Rad2Deg(i)
}

// Fraction returns the illuminated fraction k = (1 + cos i) / 2 for a phase
// angle in degrees, clamped to [0, 1].
func Fraction(phaseAngleDeg float64) float64 {
	k := 0.5 * (1 + math.Cos(timeutil.Deg2Rad(phaseAngleDeg)))
	return timeutil.Clamp(k, 0, 1)
}

// Illuminated is Fraction(PhaseAngle(moon, sun)).
func Illuminated(moon, sun ephem.State) float64 {
	return Fraction(PhaseAngle(moon, sun))
}

// Waxing reports whether the Moon is east of the Sun, i.e. its
// illumination is increasing.
func Waxing(moon, sun ephem.State) bool {
	return timeutil.Normalize360(moon.RA-sun.RA) < 180.0
}

// Phase names.
const (
	NewMoon        = "New Moon"
	WaxingCrescent = "Waxing Crescent"
	FirstQuarter   = "First Quarter"
	WaxingGibbous  = "Waxing Gibbous"
	FullMoon       = "Full Moon"
	WaningGibbous  = "Waning Gibbous"
	LastQuarter    = "Last Quarter"
	WaningCrescent = "Waning Crescent"
)

// PhaseName classifies an illuminated fraction into one of the eight
// traditional phase names.
func PhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return NewMoon
	case f > 1-eps:
		return FullMoon
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return FirstQuarter
		}
		return LastQuarter
	case f < 0.5:
		if waxing {
			return WaxingCrescent
		}
		return WaningCrescent
	default:
		if waxing {
			return WaxingGibbous
		}
		return WaningGibbous
	}
}
