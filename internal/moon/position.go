package moon

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/lunarglide/internal/timeutil"
)

// Equatorial is the Moon's geocentric place. RA is in degrees (0–360)
// instead of hours to stay consistent with internal math helpers.
type Equatorial struct {
	RA       float64 // right ascension, degrees
	Dec      float64 // declination, degrees
	Distance float64 // km, centre of the Earth to centre of the Moon
}

// Geocentric returns an approximate geocentric RA/Dec and distance for the
// Moon at t.
//
// Medium-precision model using the dominant periodic terms of the
// Meeus-style series:
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
//
// Good to a few tenths of a degree in position and ~500 km in distance.
func Geocentric(t time.Time) Equatorial {
	d := timeutil.DaysSinceJ2000(t)

	// All linear coefficients here are in deg/day.
	Lprime := timeutil.Normalize360(218.3164477 + 13.17639648*d)
	M := timeutil.Normalize360(357.5291092 + 0.98560028*d)
	Mm := timeutil.Normalize360(134.9633964 + 13.06499295*d)
	D := timeutil.Normalize360(297.8501921 + 12.19074912*d)
	F := timeutil.Normalize360(93.2720950 + 13.22935024*d)

	Lr := timeutil.Deg2Rad(Lprime)
	Mr := timeutil.Deg2Rad(M)
	Mmr := timeutil.Deg2Rad(Mm)
	Dr := timeutil.Deg2Rad(D)
	Fr := timeutil.Deg2Rad(F)

	// λ ≈ L' + 6.289 sin(Mm) + 1.274 sin(2D − Mm)
	//      + 0.658 sin(2D) + 0.214 sin(2Mm) − 0.186 sin(M)
	//      − 0.114 sin(2F)
	lon := Lr +
		timeutil.Deg2Rad(6.289)*math.Sin(Mmr) +
		timeutil.Deg2Rad(1.274)*math.Sin(2*Dr-Mmr) +
		timeutil.Deg2Rad(0.658)*math.Sin(2*Dr) +
		timeutil.Deg2Rad(0.214)*math.Sin(2*Mmr) -
		timeutil.Deg2Rad(0.186)*math.Sin(Mr) -
		timeutil.Deg2Rad(0.114)*math.Sin(2*Fr)

	// β ≈ 5.128 sin(F) + 0.280 sin(Mm + F)
	//      + 0.277 sin(Mm − F) + 0.173 sin(2D − F)
	lat := timeutil.Deg2Rad(5.128)*math.Sin(Fr) +
		timeutil.Deg2Rad(0.280)*math.Sin(Mmr+Fr) +
		timeutil.Deg2Rad(0.277)*math.Sin(Mmr-Fr) +
		timeutil.Deg2Rad(0.173)*math.Sin(2*Dr-Fr)

	// Δ (km), largest distance terms.
	delta := 385000.56 -
		20905.0*math.Cos(Mmr) -
		3699.0*math.Cos(2*Dr-Mmr) -
		2956.0*math.Cos(2*Dr) -
		570.0*math.Cos(2*Mmr) -
		246.0*math.Cos(2*Dr+Mmr)

	eps := timeutil.Deg2Rad(23.439291 - 0.0000137*d)
	ra, dec := EclipticToEquatorial(lon, lat, eps)

	return Equatorial{
		RA:       timeutil.Rad2Deg(ra),
		Dec:      timeutil.Rad2Deg(dec),
		Distance: delta,
	}
}

// EclipticToEquatorial rotates ecliptic longitude/latitude into right
// ascension [0, 2π) and declination for obliquity eps. All in radians.
func EclipticToEquatorial(lon, lat, eps float64) (ra, dec float64) {
	sε, cε := math.Sincos(eps)
	α, δ := coord.EclToEq(unit.Angle(lon), unit.Angle(lat), sε, cε)
	return α.Rad(), δ.Rad()
}
