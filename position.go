package lunarglide

import (
	"time"

	"github.com/thurmanmarka/lunarglide/internal/ephem"
	"github.com/thurmanmarka/lunarglide/internal/topo"
)

// Position is the geocentric apparent place of the Sun or Moon at one
// instant. Positions returned by GetMoon also carry the observer location
// and pressure they were requested for, which AltAz uses.
type Position struct {
	Body     Body
	Time     time.Time
	RA       float64 // right ascension, degrees [0, 360)
	Dec      float64 // declination, degrees
	Distance float64 // km from the Earth's centre
	Source   Source

	Location    Coordinates
	Pressure    float64 // hPa
	hasLocation bool
}

// Horizontal is a position in the observer's horizon frame.
type Horizontal struct {
	Altitude float64 // degrees above the horizon, refracted when pressure > 0
	Azimuth  float64 // degrees from north through east
}

func (p Position) state() ephem.State {
	return ephem.State{RA: p.RA, Dec: p.Dec, Distance: p.Distance}
}

// AltAz returns the topocentric altitude and azimuth of the position as seen
// from the location it was computed for. temperature (°C) only matters when
// the position carries a non-zero pressure. Positions from GetSun have no
// location and yield ErrInvalidLocation.
func (p Position) AltAz(temperature float64) (Horizontal, error) {
	if !p.hasLocation {
		return Horizontal{}, ErrInvalidLocation
	}
	return altAz(p.state(), p.Location, p.Pressure, temperature, p.Time), nil
}

func altAz(st ephem.State, loc Coordinates, pressure, temperature float64, t time.Time) Horizontal {
	site := loc.site()
	place := topo.Topocentric(topo.Place{RA: st.RA, Dec: st.Dec, Distance: st.Distance}, site, t)
	h := topo.Apparent(topo.ToHorizontal(place, site, t), pressure, temperature)
	return Horizontal{Altitude: h.Altitude, Azimuth: h.Azimuth}
}

// GetSun returns the Sun's geocentric positions at times.
func GetSun(times []time.Time, src Source) ([]Position, error) {
	eph, err := src.ephemeris()
	if err != nil {
		return nil, err
	}

	out := make([]Position, len(times))
	for i, t := range times {
		st := eph.Sun(t)
		out[i] = Position{
			Body:     Sun,
			Time:     t,
			RA:       st.RA,
			Dec:      st.Dec,
			Distance: st.Distance,
			Source:   src,
		}
	}
	return out, nil
}

// GetMoon returns the Moon's geocentric positions at times. loc and pressure
// do not change the geocentric place; they are recorded so the positions can
// later be turned into apparent horizon coordinates with AltAz.
func GetMoon(times []time.Time, loc Coordinates, pressure float64, src Source) ([]Position, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	eph, err := src.ephemeris()
	if err != nil {
		return nil, err
	}

	out := make([]Position, len(times))
	for i, t := range times {
		st := eph.Moon(t)
		out[i] = Position{
			Body:        Moon,
			Time:        t,
			RA:          st.RA,
			Dec:         st.Dec,
			Distance:    st.Distance,
			Source:      src,
			Location:    loc,
			Pressure:    pressure,
			hasLocation: true,
		}
	}
	return out, nil
}
