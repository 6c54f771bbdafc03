// Package crosscheck computes the Moon's illuminated fraction through several
// independent ephemeris sources and reports how far they disagree with each
// other and with a reference series.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sixdouglas/suncalc"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thurmanmarka/lunarglide"
)

// Source names.
const (
	SourceAnalytic = "analytic"
	SourceMeeus    = "meeus"
	SourceSuncalc  = "suncalc"

	// ReferenceName labels the reference series in a Diff.
	ReferenceName = "reference"
)

// NonRestrictive is the tolerance above which a check on a fraction in
// [0, 1] can no longer fail for any pair of valid values worth comparing.
const NonRestrictive = 0.1

var (
	// ErrOutOfTolerance is returned by Verify when two series differ by more
	// than the allowed tolerance.
	ErrOutOfTolerance = errors.New("illumination difference out of tolerance")

	// ErrUnknownSource is returned for a source name the checker does not know.
	ErrUnknownSource = errors.New("unknown crosscheck source")
)

type sourceFunc func(ctx context.Context, times []time.Time, loc lunarglide.Coordinates) ([]float64, error)

var sources = map[string]sourceFunc{
	SourceAnalytic: observerSource(lunarglide.SourceAnalytic),
	SourceMeeus:    observerSource(lunarglide.SourceMeeus),
	SourceSuncalc:  suncalcSource,
}

// Names returns the known source names, sorted.
func Names() []string {
	out := make([]string, 0, len(sources))
	for name := range sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func observerSource(src lunarglide.Source) sourceFunc {
	return func(_ context.Context, times []time.Time, loc lunarglide.Coordinates) ([]float64, error) {
		obs, err := lunarglide.NewObserver(loc, lunarglide.WithSource(src))
		if err != nil {
			return nil, err
		}
		return obs.MoonIllumination(times)
	}
}

func suncalcSource(ctx context.Context, times []time.Time, _ lunarglide.Coordinates) ([]float64, error) {
	out := make([]float64, len(times))
	for i, t := range times {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = suncalc.GetMoonIllumination(t).Fraction
	}
	return out, nil
}

// Request describes one cross-check run.
type Request struct {
	Times    []time.Time
	Location lunarglide.Coordinates
	// Sources to compute; empty means every known source.
	Sources []string
	// Reference values parallel to Times; optional.
	Reference []float64
}

// Series is one source's illumination values, parallel to Report.Times.
type Series struct {
	Source  string        `json:"source"`
	Values  []float64     `json:"values"`
	Elapsed time.Duration `json:"elapsed"`
}

// Diff is the largest absolute difference between two series.
type Diff struct {
	A   string    `json:"a"`
	B   string    `json:"b"`
	Max float64   `json:"max"`
	At  time.Time `json:"at"`
}

func (d Diff) String() string {
	return fmt.Sprintf("%s vs %s: %.6f at %s", d.A, d.B, d.Max, d.At.Format(time.RFC3339))
}

// Report is the outcome of Checker.Run.
type Report struct {
	Times     []time.Time `json:"times"`
	Series    []Series    `json:"series"`
	Pairs     []Diff      `json:"pairs"`
	Reference []float64   `json:"reference,omitempty"`
	// RefDiffs compares each series with Reference; B is ReferenceName.
	RefDiffs []Diff `json:"reference_diffs,omitempty"`

	logger *zap.Logger
}

// Values returns the series computed for source.
func (r *Report) Values(source string) ([]float64, bool) {
	for _, s := range r.Series {
		if s.Source == source {
			return s.Values, true
		}
	}
	return nil, false
}

// Verify checks every pairwise and reference difference against tol. All
// violations are returned together, each wrapping ErrOutOfTolerance.
func (r *Report) Verify(tol float64) error {
	if tol > NonRestrictive {
		r.log().Warn("non-restrictive tolerance",
			zap.Float64("tolerance", tol),
			zap.Float64("threshold", NonRestrictive))
	}

	var errs error
	for _, d := range r.Pairs {
		errs = multierr.Append(errs, check(d, tol))
	}
	for _, d := range r.RefDiffs {
		errs = multierr.Append(errs, check(d, tol))
	}
	return errs
}

// VerifyReference checks each source against the reference with its own
// tolerance. Sources missing from tols are skipped.
func (r *Report) VerifyReference(tols map[string]float64) error {
	var errs error
	for _, d := range r.RefDiffs {
		tol, ok := tols[d.A]
		if !ok {
			r.log().Debug("no reference tolerance", zap.String("source", d.A))
			continue
		}
		errs = multierr.Append(errs, check(d, tol))
	}
	return errs
}

func (r *Report) log() *zap.Logger {
	if r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}

func check(d Diff, tol float64) error {
	if d.Max <= tol {
		return nil
	}
	return fmt.Errorf("%w: %s (tolerance %g)", ErrOutOfTolerance, d, tol)
}

// Checker runs cross-checks.
type Checker struct {
	logger *zap.Logger
}

// New returns a Checker logging to logger; nil disables logging.
func New(logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{logger: logger}
}

// Run computes every requested source concurrently and compares them.
func (c *Checker) Run(ctx context.Context, req Request) (*Report, error) {
	names := append([]string(nil), req.Sources...)
	if len(names) == 0 {
		names = Names()
	}
	fns := make([]sourceFunc, len(names))
	for i, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		fn, ok := sources[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSource, name, strings.Join(Names(), ", "))
		}
		names[i], fns[i] = name, fn
	}
	if req.Reference != nil && len(req.Reference) != len(req.Times) {
		return nil, fmt.Errorf("%w: %d times, %d reference values",
			lunarglide.ErrLengthMismatch, len(req.Times), len(req.Reference))
	}
	if err := req.Location.Validate(); err != nil {
		return nil, err
	}

	series := make([]Series, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range names {
		i := i
		eg.Go(func() error {
			start := time.Now()
			values, err := fns[i](egCtx, req.Times, req.Location)
			if err != nil {
				return fmt.Errorf("source %s: %w", names[i], err)
			}
			series[i] = Series{Source: names[i], Values: values, Elapsed: time.Since(start)}
			c.logger.Debug("source computed",
				zap.String("source", names[i]),
				zap.Int("instants", len(values)),
				zap.Duration("elapsed", series[i].Elapsed))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Times:     req.Times,
		Series:    series,
		Reference: req.Reference,
		logger:    c.logger,
	}
	for i := 0; i < len(series); i++ {
		for j := i + 1; j < len(series); j++ {
			report.Pairs = append(report.Pairs, maxDiff(series[i].Source, series[j].Source, series[i].Values, series[j].Values, req.Times))
		}
	}
	if req.Reference != nil {
		for _, s := range series {
			report.RefDiffs = append(report.RefDiffs, maxDiff(s.Source, ReferenceName, s.Values, req.Reference, req.Times))
		}
	}

	c.logger.Info("crosscheck complete",
		zap.Strings("sources", names),
		zap.Int("instants", len(req.Times)))
	return report, nil
}

func maxDiff(a, b string, va, vb []float64, times []time.Time) Diff {
	d := Diff{A: a, B: b}
	for i := range va {
		if delta := math.Abs(va[i] - vb[i]); delta > d.Max || i == 0 {
			d.Max, d.At = delta, times[i]
		}
	}
	return d
}
