package topo

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/refraction"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
)

func TestParallaxConstants_Palomar(t *testing.T) {
	// Meeus example 11.a: Palomar, φ = 33°21'22", H = 1706 m.
	site := Site{Lat: 33 + 21.0/60 + 22.0/3600, Elevation: 1706}
	rhoSin, rhoCos := site.ParallaxConstants()

	assert.InDelta(t, 0.546861, rhoSin, 1e-5)
	assert.InDelta(t, 0.836339, rhoCos, 1e-5)
}

func TestParallaxConstants_Equator(t *testing.T) {
	rhoSin, rhoCos := Site{}.ParallaxConstants()
	assert.InDelta(t, 0, rhoSin, 1e-12)
	assert.InDelta(t, 1, rhoCos, 1e-12)
}

func TestTopocentric_MoonShiftsTowardHorizon(t *testing.T) {
	tm := time.Date(1990, 6, 1, 12, 0, 0, 0, time.UTC)
	site := Site{Lat: 19, Lon: -155}

	// Put the body on the local meridian at the observer's declination: the
	// topocentric place should then sit almost exactly one Earth radius closer.
	geo := Place{RA: site.LocalSiderealTime(tm), Dec: 19, Distance: 384400}
	topoPlace := Topocentric(geo, site, tm)

	assert.InDelta(t, geo.Distance-EarthEquatorialRadiusKm, topoPlace.Distance, 25)
	assert.InDelta(t, geo.RA, topoPlace.RA, 1e-6)
}

func TestToHorizontal_Zenith(t *testing.T) {
	tm := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	site := Site{Lat: 40, Lon: -105}
	p := Place{RA: site.LocalSiderealTime(tm), Dec: 40, Distance: 1e9}

	h := ToHorizontal(p, site, tm)
	assert.InDelta(t, 90, h.Altitude, 1e-4)
}

func TestToHorizontal_AzimuthEast(t *testing.T) {
	tm := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	site := Site{Lat: 0, Lon: 0}
	// On the celestial equator, six hours before transit: rising due east.
	p := Place{RA: site.LocalSiderealTime(tm) + 90, Dec: 0, Distance: 1e9}

	h := ToHorizontal(p, site, tm)
	assert.InDelta(t, 0, h.Altitude, 1e-6)
	assert.InDelta(t, 90, h.Azimuth, 1e-6)
}

func TestRefraction(t *testing.T) {
	// No atmosphere.
	assert.Equal(t, 0.0, Refraction(0, 0, 10))

	// Standard conditions at the horizon: about 29 arcminutes.
	r := Refraction(0, 1010, 10)
	assert.InDelta(t, 29.0/60, r, 1.0/60)

	// Thinner air bends less.
	assert.Less(t, Refraction(10, 700, 10), Refraction(10, 1010, 10))

	// Warmer air bends less.
	assert.Less(t, Refraction(10, 1010, 30), Refraction(10, 1010, 10))

	// Near the zenith refraction is negligible.
	assert.Less(t, math.Abs(Refraction(89.9, 1010, 10)), 1e-4)
}

func TestRefraction_MatchesBennett(t *testing.T) {
	// At the formula's reference conditions Saemundsson inverts Bennett to
	// within a few arcseconds (Meeus chapter 16).
	for _, h := range []float64{0.5, 5, 30, 60} {
		r := Refraction(h, 1010, 10)
		back := refraction.Bennett(unit.AngleFromDeg(h + r)).Deg()
		assert.InDelta(t, r, back, 5.0/3600, "altitude %v", h)
	}
}

func TestApparent(t *testing.T) {
	h := Horizontal{Altitude: 5, Azimuth: 123}
	got := Apparent(h, 1010, 10)
	assert.Greater(t, got.Altitude, h.Altitude)
	assert.Equal(t, h.Azimuth, got.Azimuth)
}
