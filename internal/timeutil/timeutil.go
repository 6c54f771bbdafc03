package timeutil

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// -----------------------------
// Time relative to J2000
// -----------------------------

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// JDJ2000 is the Julian Day of the J2000.0 epoch.
const JDJ2000 = 2451545.0

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// The analytic models work directly on UT; the few tens of seconds of
// ΔT are well below their accuracy.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

// JulianDay returns the Julian Day (UT) of t using the Gregorian calendar
// algorithm from Meeus, chapter 7.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := y / 100
	B := 2 - A + A/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hour/24.0

	return jd
}

// JulianCenturies returns Julian centuries since J2000.0 for a Julian Day.
func JulianCenturies(jd float64) float64 {
	return (jd - JDJ2000) / 36525.0
}

// DeltaT returns an estimate of TT - UT in seconds for the given instant,
// following Meeus chapter 10: table 10.A between 1620 and 2010 and the
// book's polynomials outside it.
func DeltaT(t time.Time) float64 {
	u := t.UTC()
	y := float64(u.Year()) + (float64(u.YearDay())-0.5)/365.25

	switch {
	case y < 948:
		return deltat.PolyBefore948(y).Sec()
	case y < 1620:
		return deltat.Poly948to1600(y).Sec()
	case y < 2010:
		return deltat.Interp10A(julian.TimeToJD(u)).Sec()
	default:
		return deltat.PolyAfter2000(y).Sec()
	}
}

// -----------------------------
// Angles
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// NormalizePi wraps an angle in radians to (-π, π].
func NormalizePi(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GMST returns the Greenwich mean sidereal time in degrees [0, 360).
func GMST(t time.Time) float64 {
	return Normalize360(sidereal.Mean(julian.TimeToJD(t.UTC())).Angle().Deg())
}
