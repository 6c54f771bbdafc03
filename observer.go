package lunarglide

import (
	"fmt"
	"math"
	"time"
)

// Observer combines a location with the atmospheric conditions used for
// apparent (refracted) horizon positions, and the ephemeris source used by
// its time-based queries.
//
// The zero Pressure disables refraction, so horizon quantities are
// geometric unless WithPressure is given. A nil Timezone means UTC.
type Observer struct {
	Name        string
	Location    Coordinates
	Pressure    float64 // hPa
	Temperature float64 // °C

	// RelativeHumidity (0..1) is carried for callers and validated, but
	// does not enter any computation: optical refraction depends on
	// pressure and temperature only.
	RelativeHumidity float64

	Timezone *time.Location
	Source   Source
}

// ObserverOption customises an Observer built by NewObserver.
type ObserverOption func(*Observer)

// WithName labels the observer.
func WithName(name string) ObserverOption {
	return func(o *Observer) { o.Name = name }
}

// WithPressure sets the atmospheric pressure in hPa.
func WithPressure(hPa float64) ObserverOption {
	return func(o *Observer) { o.Pressure = hPa }
}

// WithTemperature sets the air temperature in °C.
func WithTemperature(celsius float64) ObserverOption {
	return func(o *Observer) { o.Temperature = celsius }
}

// WithRelativeHumidity records the relative humidity as a fraction in
// [0, 1]. It is informational and does not change any position.
func WithRelativeHumidity(rh float64) ObserverOption {
	return func(o *Observer) { o.RelativeHumidity = rh }
}

// WithTimezone sets the zone whose calendar days are used by the rise/set
// and twilight searches.
func WithTimezone(loc *time.Location) ObserverOption {
	return func(o *Observer) { o.Timezone = loc }
}

// WithSource selects the ephemeris for time-based queries.
func WithSource(src Source) ObserverOption {
	return func(o *Observer) { o.Source = src }
}

// NewObserver returns an observer at loc. Defaults: no atmosphere
// (pressure 0), 0 °C, humidity 0, UTC, SourceAnalytic.
func NewObserver(loc Coordinates, opts ...ObserverOption) (*Observer, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	o := &Observer{
		Location: loc,
		Timezone: time.UTC,
		Source:   SourceAnalytic,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.Timezone == nil {
		o.Timezone = time.UTC
	}
	if o.Pressure < 0 || math.IsNaN(o.Pressure) {
		return nil, fmt.Errorf("invalid pressure %.3f hPa", o.Pressure)
	}
	if o.RelativeHumidity < 0 || o.RelativeHumidity > 1 {
		return nil, fmt.Errorf("invalid relative humidity %.3f (want 0..1)", o.RelativeHumidity)
	}
	if _, err := o.Source.ephemeris(); err != nil {
		return nil, err
	}

	return o, nil
}

// String returns a short description for logs.
func (o *Observer) String() string {
	name := o.Name
	if name == "" {
		name = "observer"
	}
	return fmt.Sprintf("%s (lat=%.4f lon=%.4f h=%.0fm, %s)",
		name, o.Location.Lat, o.Location.Lon, o.Location.Elevation, o.Source)
}

// Sun returns the Sun's positions at times using the observer's source.
func (o *Observer) Sun(times []time.Time) ([]Position, error) {
	return GetSun(times, o.Source)
}

// Moon returns the Moon's positions at times using the observer's source,
// tagged with the observer's location and pressure.
func (o *Observer) Moon(times []time.Time) ([]Position, error) {
	return GetMoon(times, o.Location, o.Pressure, o.Source)
}

// localDay returns midnight, in the observer's zone, of date's calendar day.
func (o *Observer) localDay(date time.Time) time.Time {
	zone := o.Timezone
	if zone == nil {
		zone = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, zone)
}
