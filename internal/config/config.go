// Package config loads the lunarglide CLI configuration from YAML, with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/lunarglide"
	"github.com/thurmanmarka/lunarglide/internal/crosscheck"
)

// Environment variables read by ApplyEnv.
const (
	EnvLat      = "LUNARGLIDE_LAT"
	EnvLon      = "LUNARGLIDE_LON"
	EnvSource   = "LUNARGLIDE_SOURCE"
	EnvLogLevel = "LUNARGLIDE_LOG_LEVEL"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete CLI configuration.
type Config struct {
	Observer  ObserverConfig  `yaml:"observer"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Compare   CompareConfig   `yaml:"compare"`
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
}

// ObserverConfig describes where and under which conditions to observe.
type ObserverConfig struct {
	Name        string  `yaml:"name,omitempty"`
	Lat         float64 `yaml:"lat"`
	Lon         float64 `yaml:"lon"`
	Elevation   float64 `yaml:"elevation"`
	Pressure    float64 `yaml:"pressure"`    // hPa, 0 disables refraction
	Temperature float64 `yaml:"temperature"` // °C
	Humidity    float64 `yaml:"humidity"`    // 0..1
	Timezone    string  `yaml:"timezone"`    // IANA name
}

// EphemerisConfig selects the ephemeris.
type EphemerisConfig struct {
	Source string `yaml:"source"`
}

// CompareConfig configures `lunarglide compare`.
type CompareConfig struct {
	Tolerance float64  `yaml:"tolerance"`
	Sources   []string `yaml:"sources"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in configuration: the reference observer
// on Hawaii, analytic ephemeris, info logging and table output.
func DefaultConfig() *Config {
	return &Config{
		Observer: ObserverConfig{
			Name:     "reference",
			Lat:      19,
			Lon:      -155,
			Timezone: "UTC",
		},
		Ephemeris: EphemerisConfig{Source: lunarglide.SourceAnalytic.String()},
		Compare: CompareConfig{
			Tolerance: 0.02,
			Sources:   crosscheck.Names(),
		},
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: FormatTable},
	}
}

// DefaultPath returns ~/.config/lunarglide/config.yaml, or config.yaml in
// the working directory when the home directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "lunarglide", "config.yaml")
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from LUNARGLIDE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLat); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLat, err)
		}
		c.Observer.Lat = lat
	}
	if v := os.Getenv(EnvLon); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLon, err)
		}
		c.Observer.Lon = lon
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Ephemeris.Source = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := c.coordinates().Validate(); err != nil {
		return fmt.Errorf("%w: observer: %w", ErrInvalid, err)
	}
	if _, err := time.LoadLocation(c.Observer.Timezone); err != nil {
		return fmt.Errorf("%w: observer.timezone: %w", ErrInvalid, err)
	}
	if _, err := lunarglide.ParseSource(c.Ephemeris.Source); err != nil {
		return fmt.Errorf("%w: ephemeris.source: %w", ErrInvalid, err)
	}
	if c.Compare.Tolerance < 0 {
		return fmt.Errorf("%w: compare.tolerance %g is negative", ErrInvalid, c.Compare.Tolerance)
	}
	known := crosscheck.Names()
	for _, s := range c.Compare.Sources {
		if !contains(known, strings.ToLower(s)) {
			return fmt.Errorf("%w: compare.sources: unknown %q (known: %s)", ErrInvalid, s, strings.Join(known, ", "))
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalid, err)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: output.format %q (want %s or %s)", ErrInvalid, c.Output.Format, FormatTable, FormatJSON)
	}
	return nil
}

// NewObserver builds the observer described by the configuration.
func (c *Config) NewObserver() (*lunarglide.Observer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	src, _ := lunarglide.ParseSource(c.Ephemeris.Source)
	tz, _ := time.LoadLocation(c.Observer.Timezone)

	return lunarglide.NewObserver(c.coordinates(),
		lunarglide.WithName(c.Observer.Name),
		lunarglide.WithPressure(c.Observer.Pressure),
		lunarglide.WithTemperature(c.Observer.Temperature),
		lunarglide.WithRelativeHumidity(c.Observer.Humidity),
		lunarglide.WithTimezone(tz),
		lunarglide.WithSource(src),
	)
}

func (c *Config) coordinates() lunarglide.Coordinates {
	return lunarglide.Coordinates{Lat: c.Observer.Lat, Lon: c.Observer.Lon, Elevation: c.Observer.Elevation}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
