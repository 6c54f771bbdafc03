// Package ephem provides interchangeable Sun and Moon ephemerides.
package ephem

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// State is a geocentric apparent place of a body.
type State struct {
	RA       float64 // right ascension, degrees [0, 360)
	Dec      float64 // declination, degrees
	Distance float64 // km from the Earth's centre
}

// Ephemeris defines a source of Sun and Moon positions.
type Ephemeris interface {
	// Name returns the source name used in config and logs.
	Name() string

	// Sun returns the Sun's geocentric apparent place at t.
	Sun(t time.Time) State

	// Moon returns the Moon's geocentric apparent place at t.
	Moon(t time.Time) State
}

// Source names.
const (
	NameAnalytic = "analytic"
	NameMeeus    = "meeus"
)

// ErrUnknownSource is returned by New for names it does not recognise.
var ErrUnknownSource = errors.New("unknown ephemeris source")

var registry = map[string]Ephemeris{
	NameAnalytic: Analytic{},
	NameMeeus:    Meeus{},
}

// New returns the ephemeris registered under name (case-insensitive).
func New(name string) (Ephemeris, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSource, name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// Names lists the registered sources in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
