// Package topo converts geocentric equatorial places into what an observer
// on the Earth's surface sees: topocentric place, altitude and azimuth, and
// atmospheric refraction.
package topo

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/refraction"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/lunarglide/internal/timeutil"
)

// WGS84 ellipsoid.
const (
	EarthEquatorialRadiusKm = 6378.137
	earthFlattening         = 1 / 298.257223563
)

// Site is an observer position on the WGS84 ellipsoid.
type Site struct {
	Lat       float64 // geodetic latitude, degrees
	Lon       float64 // degrees, east positive
	Elevation float64 // metres
}

// ParallaxConstants returns ρ sin φ' and ρ cos φ' (in Earth equatorial radii)
// for the site (Meeus, chapter 11).
func (s Site) ParallaxConstants() (rhoSin, rhoCos float64) {
	phi := timeutil.Deg2Rad(s.Lat)
	ba := 1 - earthFlattening
	u := math.Atan(ba * math.Tan(phi))
	h := s.Elevation / (EarthEquatorialRadiusKm * 1000)

	rhoSin = ba*math.Sin(u) + h*math.Sin(phi)
	rhoCos = math.Cos(u) + h*math.Cos(phi)
	return rhoSin, rhoCos
}

// LocalSiderealTime returns the local mean sidereal time in degrees.
func (s Site) LocalSiderealTime(t time.Time) float64 {
	return timeutil.Normalize360(timeutil.GMST(t) + s.Lon)
}

// Place is an equatorial position with distance.
type Place struct {
	RA       float64 // degrees
	Dec      float64 // degrees
	Distance float64 // km
}

// Horizontal is a position in the observer's horizon frame.
type Horizontal struct {
	Altitude float64 // degrees above the horizon
	Azimuth  float64 // degrees, measured from north through east
}

// Topocentric shifts a geocentric place to the observer's position. The
// shift is done with rectangular coordinates so that the distance is
// corrected too.
func Topocentric(geo Place, site Site, t time.Time) Place {
	ra := timeutil.Deg2Rad(geo.RA)
	dec := timeutil.Deg2Rad(geo.Dec)
	lst := timeutil.Deg2Rad(site.LocalSiderealTime(t))
	rhoSin, rhoCos := site.ParallaxConstants()

	x := geo.Distance*math.Cos(dec)*math.Cos(ra) - EarthEquatorialRadiusKm*rhoCos*math.Cos(lst)
	y := geo.Distance*math.Cos(dec)*math.Sin(ra) - EarthEquatorialRadiusKm*rhoCos*math.Sin(lst)
	z := geo.Distance*math.Sin(dec) - EarthEquatorialRadiusKm*rhoSin

	dist := math.Sqrt(x*x + y*y + z*z)
	raTopo := math.Atan2(y, x)
	if raTopo < 0 {
		raTopo += 2 * math.Pi
	}

	return Place{
		RA:       timeutil.Rad2Deg(raTopo),
		Dec:      timeutil.Rad2Deg(math.Asin(z / dist)),
		Distance: dist,
	}
}

// ToHorizontal converts an equatorial place (already topocentric if parallax
// matters) into geometric altitude and azimuth.
func ToHorizontal(p Place, site Site, t time.Time) Horizontal {
	lat := timeutil.Deg2Rad(site.Lat)
	dec := timeutil.Deg2Rad(p.Dec)
	H := timeutil.NormalizePi(timeutil.Deg2Rad(site.LocalSiderealTime(t) - p.RA))

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(H)
	alt := math.Asin(timeutil.Clamp(sinAlt, -1, 1))

	// Azimuth from north, eastwards.
	az := math.Atan2(-math.Cos(dec)*math.Sin(H),
		math.Sin(dec)*math.Cos(lat)-math.Cos(dec)*math.Sin(lat)*math.Cos(H))

	return Horizontal{
		Altitude: timeutil.Rad2Deg(alt),
		Azimuth:  timeutil.Normalize360(timeutil.Rad2Deg(az)),
	}
}

// Altitude is a shortcut for the geometric altitude of a geocentric place,
// with topocentric parallax applied.
func Altitude(geo Place, site Site, t time.Time) float64 {
	return ToHorizontal(Topocentric(geo, site, t), site, t).Altitude
}

// Refraction returns the atmospheric refraction in degrees to be added to a
// geometric altitude altDeg, for pressure in hPa and temperature in °C.
// Saemundsson's formula (Meeus 16.4) holds for 1010 hPa and 10 °C and is
// scaled to other conditions. Zero pressure means no atmosphere and yields
// zero.
func Refraction(altDeg, pressure, temperature float64) float64 {
	if pressure <= 0 || altDeg < -1.0 || altDeg > 90 {
		return 0
	}

	// The formula diverges a few degrees below the horizon.
	h := math.Max(altDeg, -0.5)

	r := refraction.Saemundsson(unit.AngleFromDeg(h))
	return r.Deg() * (pressure / 1010.0) * (283.0 / (273.0 + temperature))
}

// Apparent applies refraction to a geometric horizontal position.
func Apparent(h Horizontal, pressure, temperature float64) Horizontal {
	h.Altitude += Refraction(h.Altitude, pressure, temperature)
	return h
}
