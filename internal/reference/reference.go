// Package reference holds the offline illumination fixture that computed
// values are checked against, and the formatter used to refresh it.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var fixtureYAML []byte

// ErrInvalidFixture is returned when a fixture is internally inconsistent.
var ErrInvalidFixture = errors.New("invalid reference fixture")

// Location is the fixture's observer position.
type Location struct {
	Lat       float64 `yaml:"lat"`
	Lon       float64 `yaml:"lon"`
	Elevation float64 `yaml:"elevation"`
}

// Tolerance holds absolute tolerances on the illuminated fraction.
type Tolerance struct {
	// Legacy is the first, non-restrictive tolerance.
	Legacy float64 `yaml:"legacy"`
	// Strict maps a source name to the tolerance it is expected to meet.
	Strict map[string]float64 `yaml:"strict"`
}

// Fixture is a set of instants with their reference illumination.
type Fixture struct {
	Generator    string      `yaml:"generator"`
	Location     Location    `yaml:"location"`
	Times        []time.Time `yaml:"times"`
	Illumination []float64   `yaml:"illumination"`
	Tolerance    Tolerance   `yaml:"tolerance"`
}

// Default returns the embedded fixture.
func Default() (Fixture, error) {
	return Parse(fixtureYAML)
}

// Parse decodes and validates a YAML fixture.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// Validate checks that times and values line up and values are fractions.
func (f Fixture) Validate() error {
	if len(f.Times) == 0 {
		return fmt.Errorf("%w: no times", ErrInvalidFixture)
	}
	if len(f.Times) != len(f.Illumination) {
		return fmt.Errorf("%w: %d times but %d values", ErrInvalidFixture, len(f.Times), len(f.Illumination))
	}
	for i, v := range f.Illumination {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: value %d = %v outside [0, 1]", ErrInvalidFixture, i, v)
		}
	}
	if f.Tolerance.Legacy < 0 {
		return fmt.Errorf("%w: negative legacy tolerance", ErrInvalidFixture)
	}
	return nil
}

// StrictTolerance returns the tolerance configured for source.
func (f Fixture) StrictTolerance(source string) (float64, bool) {
	tol, ok := f.Tolerance.Strict[strings.ToLower(source)]
	return tol, ok
}

// Format renders values as a bracketed, comma separated list using the
// shortest representation that round-trips, e.g.
//
//	[0.15475513880925418, 0.19484233284757257]
//
// so the output can be pasted straight back into the fixture or a test.
func Format(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Write prints Format(values) followed by a newline.
func Write(w io.Writer, values []float64) error {
	_, err := fmt.Fprintln(w, Format(values))
	return err
}
