package lunarglide

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/lunarglide/internal/moon"
	"github.com/thurmanmarka/lunarglide/internal/sun"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6.0, nil
	case TwilightNautical:
		return -12.0, nil
	case TwilightAstronomical:
		return -18.0, nil
	default:
		return 0, fmt.Errorf("unknown TwilightKind: %d", k)
	}
}

// RiseSet holds rise and set times of a body on a given date. A zero time
// means that event does not happen on that date.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase.
// High latitudes may lack either one.
type DaylightPhases struct {
	Morning    PhaseWindow
	Evening    PhaseWindow
	HasMorning bool
	HasEvening bool
}

// RiseSetFor returns rise and set times for the given body and location on
// the local calendar date of date. Results are in date's time zone.
func RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}

	switch body {
	case Sun:
		ev := sun.EventsForDate(loc.site(), date, sun.ApparentHorizonAltitude)
		return localRiseSet(date, ev.Rise, ev.Set, ev.OKRise, ev.OKSet)
	case Moon:
		ev := moon.EventsForDate(loc.site(), date)
		return localRiseSet(date, ev.Rise, ev.Set, ev.OKRise, ev.OKSet)
	default:
		return RiseSet{}, fmt.Errorf("unknown body %v", body)
	}
}

// TwilightFor computes twilight times of the given kind. Rise holds dawn
// (upward crossing of the twilight altitude) and Set holds dusk.
func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	if err := loc.Validate(); err != nil {
		return RiseSet{}, err
	}
	alt, err := kind.altitude()
	if err != nil {
		return RiseSet{}, err
	}

	ev := sun.EventsForDate(loc.site(), date, alt)
	return localRiseSet(date, ev.Rise, ev.Set, ev.OKRise, ev.OKSet)
}

// DaylightHours returns the time between sunrise and sunset in hours.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := RiseSetFor(Sun, loc, date)
	if err != nil {
		return 0, err
	}
	if rs.Rise.IsZero() || rs.Set.IsZero() {
		return 0, ErrNoRiseNoSet
	}
	return rs.Set.Sub(rs.Rise).Hours(), nil
}

// GoldenHourFor returns the intervals when the Sun's centre is between -4°
// and +6°: Morning while it climbs, Evening while it sinks.
func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return altitudeWindows(loc, date, -4.0, 6.0)
}

// BlueHourFor returns the intervals when the Sun's centre is between -6°
// and -4°.
func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return altitudeWindows(loc, date, -6.0, -4.0)
}

func altitudeWindows(loc Coordinates, date time.Time, lowAlt, highAlt float64) (DaylightPhases, error) {
	if err := loc.Validate(); err != nil {
		return DaylightPhases{}, err
	}

	locTZ := date.Location()
	year, month, day := date.Date()

	low := sun.EventsForDate(loc.site(), date, lowAlt)
	high := sun.EventsForDate(loc.site(), date, highAlt)

	window := func(a, b time.Time) (PhaseWindow, bool) {
		start := withLocalDate(a.In(locTZ), year, month, day)
		end := withLocalDate(b.In(locTZ), year, month, day)
		return PhaseWindow{Start: start, End: end}, end.After(start)
	}

	var phases DaylightPhases

	// Morning: climbing from lowAlt to highAlt.
	if low.OKRise && high.OKRise {
		if w, ok := window(low.Rise, high.Rise); ok {
			phases.Morning, phases.HasMorning = w, true
		}
	}
	// Evening: descending from highAlt to lowAlt.
	if high.OKSet && low.OKSet {
		if w, ok := window(high.Set, low.Set); ok {
			phases.Evening, phases.HasEvening = w, true
		}
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}

func localRiseSet(date time.Time, riseUTC, setUTC time.Time, okRise, okSet bool) (RiseSet, error) {
	if !okRise && !okSet {
		return RiseSet{}, ErrNoRiseNoSet
	}

	locTZ := date.Location()
	year, month, day := date.Date()

	var rs RiseSet
	if okRise {
		rs.Rise = withLocalDate(riseUTC.In(locTZ), year, month, day)
	}
	if okSet {
		rs.Set = withLocalDate(setUTC.In(locTZ), year, month, day)
	}
	return rs, nil
}

// withLocalDate returns a copy of t but with its calendar date
// forced to (year, month, day), keeping the same clock time and location.
func withLocalDate(t time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// RiseSet returns rise and set for body on the observer's local date.
func (o *Observer) RiseSet(body Body, date time.Time) (RiseSet, error) {
	return RiseSetFor(body, o.Location, o.localDay(date))
}

// Twilight returns dawn and dusk of the given kind on the observer's local date.
func (o *Observer) Twilight(date time.Time, kind TwilightKind) (RiseSet, error) {
	return TwilightFor(o.Location, o.localDay(date), kind)
}

// SunRiseSet is RiseSet(Sun, date).
func (o *Observer) SunRiseSet(date time.Time) (RiseSet, error) {
	return o.RiseSet(Sun, date)
}

// MoonRiseSet is RiseSet(Moon, date).
func (o *Observer) MoonRiseSet(date time.Time) (RiseSet, error) {
	return o.RiseSet(Moon, date)
}
