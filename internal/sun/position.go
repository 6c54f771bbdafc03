package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/lunarglide/internal/timeutil"
)

// AU is the astronomical unit in km.
const AU = 149597870.7

// Equatorial is the Sun's geocentric apparent place. RA is in degrees
// (0–360) to stay consistent with the internal math helpers.
type Equatorial struct {
	RA       float64 // right ascension, degrees
	Dec      float64 // declination, degrees
	Distance float64 // km
}

// Geocentric returns the Sun's apparent geocentric RA/Dec and distance at t.
//
// Low-precision series from the Astronomical Almanac (Meeus chapter 25),
// good to about 0.01° in position and 1e-5 AU in distance:
//
//	L0 = geometric mean longitude
//	M  = mean anomaly
//	C  = equation of center
//	e  = eccentricity of the Earth's orbit
//	Ω  = longitude of the Moon's ascending node (nutation + aberration)
func Geocentric(t time.Time) Equatorial {
	T := timeutil.JulianCenturies(timeutil.JulianDay(t))

	L0 := timeutil.Normalize360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := timeutil.Normalize360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mr := timeutil.Deg2Rad(M)

	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mr) +
		(0.019993-0.000101*T)*math.Sin(2*Mr) +
		0.000289*math.Sin(3*Mr)

	trueLon := L0 + C
	trueAnomaly := timeutil.Deg2Rad(M + C)

	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	R := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(trueAnomaly))

	omega := timeutil.Deg2Rad(125.04 - 1934.136*T)
	lambda := timeutil.Deg2Rad(trueLon - 0.00569 - 0.00478*math.Sin(omega))

	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := timeutil.Deg2Rad(eps0 + 0.00256*math.Cos(omega))

	ra := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(eps) * math.Sin(lambda))

	return Equatorial{
		RA:       timeutil.Rad2Deg(ra),
		Dec:      timeutil.Rad2Deg(dec),
		Distance: R * AU,
	}
}
