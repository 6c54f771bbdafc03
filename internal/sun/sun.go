package sun

import (
	"time"

	"github.com/thurmanmarka/lunarglide/internal/solver"
	"github.com/thurmanmarka/lunarglide/internal/topo"
)

// ApparentHorizonAltitude is the altitude (in degrees) of the Sun's center
// when the apparent upper limb is on the horizon under standard conditions.
const ApparentHorizonAltitude = -0.833

// Events holds the upward and downward crossings of a target altitude during
// one local calendar day. Times are in UTC.
type Events struct {
	Rise   time.Time
	Set    time.Time
	OKRise bool
	OKSet  bool
}

// EventsForDate finds the times when the Sun's altitude crosses targetAlt
// (degrees) during the local calendar day of date at site. Use
// ApparentHorizonAltitude for sunrise/sunset and -6/-12/-18 for twilight.
func EventsForDate(site topo.Site, date time.Time, targetAlt float64) Events {
	loc := date.Location()
	year, month, day := date.Date()

	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	alt := func(t time.Time) float64 {
		return Altitude(site, t)
	}

	var ev Events

	if res := solver.FindCrossing(alt, start, end, targetAlt, solver.Rising, solver.DaySearch); res.OK {
		ev.Rise, ev.OKRise = res.Time.UTC(), true
	}
	if res := solver.FindCrossing(alt, start, end, targetAlt, solver.Setting, solver.DaySearch); res.OK {
		ev.Set, ev.OKSet = res.Time.UTC(), true
	}

	return ev
}

// Altitude returns the Sun's geometric altitude in degrees at site and t.
func Altitude(site topo.Site, t time.Time) float64 {
	eq := Geocentric(t)
	return topo.Altitude(topo.Place{RA: eq.RA, Dec: eq.Dec, Distance: eq.Distance}, site, t)
}
