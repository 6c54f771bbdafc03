// Package lunarglide computes the Moon's illuminated fraction, and the
// Sun and Moon positions it is derived from, for an observer on the Earth.
//
// Two ephemeris sources are available and can be cross-checked against each
// other:
//   - SourceAnalytic: built-in truncated series (fast, ~1e-3 in fraction)
//   - SourceMeeus: the full series of "Astronomical Algorithms" via
//     github.com/soniakeys/meeus
//
// Illumination can be requested either from a set of instants through an
// Observer, or from Sun and Moon positions computed beforehand with GetSun
// and GetMoon. Both paths run the same arithmetic and agree exactly.
//
// Rise/set, twilight and Moon phase helpers are built on the same models.
package lunarglide

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/thurmanmarka/lunarglide/internal/ephem"
	"github.com/thurmanmarka/lunarglide/internal/topo"
)

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	default:
		return fmt.Sprintf("Body(%d)", int(b))
	}
}

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -155 for 155°W)
	Elevation float64 // metres above the WGS84 ellipsoid
}

// Validate reports whether the coordinates describe a point on the Earth.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsNaN(c.Elevation):
		return fmt.Errorf("%w: NaN component", ErrInvalidLocation)
	case c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("%w: latitude %.6f out of [-90, 90]", ErrInvalidLocation, c.Lat)
	case c.Lon < -180 || c.Lon > 180:
		return fmt.Errorf("%w: longitude %.6f out of [-180, 180]", ErrInvalidLocation, c.Lon)
	}
	return nil
}

func (c Coordinates) site() topo.Site {
	return topo.Site{Lat: c.Lat, Lon: c.Lon, Elevation: c.Elevation}
}

// Source selects the ephemeris used to place the Sun and Moon.
type Source int

const (
	// SourceAnalytic is the built-in low-precision model.
	SourceAnalytic Source = iota
	// SourceMeeus uses github.com/soniakeys/meeus.
	SourceMeeus
)

// String returns the source name as used in configuration.
func (s Source) String() string {
	switch s {
	case SourceAnalytic:
		return ephem.NameAnalytic
	case SourceMeeus:
		return ephem.NameMeeus
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// ParseSource parses a source name (case-insensitive).
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ephem.NameAnalytic, "builtin":
		return SourceAnalytic, nil
	case ephem.NameMeeus:
		return SourceMeeus, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	if s != SourceAnalytic && s != SourceMeeus {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSource, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(b []byte) error {
	v, err := ParseSource(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Source) ephemeris() (ephem.Ephemeris, error) {
	if s != SourceAnalytic && s != SourceMeeus {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSource, int(s))
	}
	return ephem.New(s.String())
}

var (
	// ErrNoRiseNoSet is returned when a body does not rise or set on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")

	// ErrInvalidLocation is returned for coordinates off the Earth.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrLengthMismatch is returned when parallel Sun and Moon position
	// slices differ in length.
	ErrLengthMismatch = errors.New("sun and moon position counts differ")

	// ErrBodyMismatch is returned when a position of the wrong body is
	// passed where a Sun or Moon position is expected.
	ErrBodyMismatch = errors.New("position is for the wrong body")

	// ErrUnknownSource is returned for an unrecognised ephemeris source.
	ErrUnknownSource = ephem.ErrUnknownSource
)
