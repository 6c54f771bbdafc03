package moon

import (
	"time"

	"github.com/thurmanmarka/lunarglide/internal/solver"
	"github.com/thurmanmarka/lunarglide/internal/topo"
)

// The horizon altitudes below were tuned against published Phoenix and New
// York tables for 2025-11-30. The set threshold sits setExtraDropDeg above
// the rise threshold to remove a ~1 minute late bias on moonset.
const (
	meanDistanceKm     = 384400.0
	baseHorizonDeg     = -0.86
	horizonPerFracDist = 0.6
	setExtraDropDeg    = 0.19
)

// HorizonAltitude returns the altitude (deg) of the Moon's centre at which
// its upper limb touches the horizon, including refraction and a distance
// dependent semi-diameter term: a closer Moon is larger, so the centre sits
// lower.
func HorizonAltitude(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return baseHorizonDeg
	}
	frac := (distanceKm - meanDistanceKm) / meanDistanceKm
	return baseHorizonDeg + horizonPerFracDist*frac
}

// Events holds moonrise and moonset during one local calendar day, in UTC.
type Events struct {
	Rise   time.Time
	Set    time.Time
	OKRise bool
	OKSet  bool
}

// EventsForDate computes moonrise and moonset for the local calendar day of
// date (its Location defines midnight) at site. Because the Moon rises
// about 50 minutes later each day, either event may be missing.
func EventsForDate(site topo.Site, date time.Time) Events {
	loc := date.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	riseFn := func(t time.Time) float64 {
		eq := Geocentric(t)
		return Altitude(site, t) - HorizonAltitude(eq.Distance)
	}
	setFn := func(t time.Time) float64 {
		eq := Geocentric(t)
		return Altitude(site, t) - (HorizonAltitude(eq.Distance) + setExtraDropDeg)
	}

	var ev Events

	if res := solver.FindCrossing(riseFn, start, end, 0, solver.Rising, solver.DaySearch); res.OK {
		ev.Rise, ev.OKRise = res.Time.UTC(), true
	}
	if res := solver.FindCrossing(setFn, start, end, 0, solver.Setting, solver.DaySearch); res.OK {
		ev.Set, ev.OKSet = res.Time.UTC(), true
	}

	return ev
}

// Altitude returns the Moon's topocentric geometric altitude in degrees.
func Altitude(site topo.Site, t time.Time) float64 {
	eq := Geocentric(t)
	return topo.Altitude(topo.Place{RA: eq.RA, Dec: eq.Dec, Distance: eq.Distance}, site, t)
}
