package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/lunarglide"
	"github.com/thurmanmarka/lunarglide/internal/crosscheck"
	"github.com/thurmanmarka/lunarglide/internal/reference"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		tolerance float64
		sources   []string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "compare [time...]",
		Short: "Cross-check illumination between ephemeris sources",
		Long: `Computes the illuminated fraction through every source (analytic, meeus,
suncalc) and reports the largest differences between them.

Without arguments the embedded reference fixture is used, and each source is
also compared with the reference values. With --strict each source must meet
its own reference tolerance; otherwise every difference is checked against
--tolerance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := reference.Default()
			if err != nil {
				return err
			}

			req := crosscheck.Request{Sources: a.cfg.Compare.Sources}
			if cmd.Flags().Changed("sources") {
				req.Sources = sources
			}
			if !cmd.Flags().Changed("tolerance") {
				tolerance = a.cfg.Compare.Tolerance
			}

			if len(args) == 0 {
				req.Times = fx.Times
				req.Reference = fx.Illumination
				req.Location = lunarglide.Coordinates{Lat: fx.Location.Lat, Lon: fx.Location.Lon, Elevation: fx.Location.Elevation}
			} else {
				tz, err := time.LoadLocation(a.cfg.Observer.Timezone)
				if err != nil {
					return err
				}
				if req.Times, err = instants(args, "", "", 0, tz); err != nil {
					return err
				}
				req.Location = lunarglide.Coordinates{Lat: a.cfg.Observer.Lat, Lon: a.cfg.Observer.Lon, Elevation: a.cfg.Observer.Elevation}
			}

			report, err := crosscheck.New(a.logger).Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if a.json() {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else if err := printReport(cmd, report); err != nil {
				return err
			}

			if strict {
				if req.Reference == nil {
					return fmt.Errorf("--strict needs the reference fixture; drop the time arguments")
				}
				err = report.VerifyReference(fx.Tolerance.Strict)
			} else {
				err = report.Verify(tolerance)
			}
			if err != nil {
				a.logger.Error("cross-check failed", zap.Error(err))
				return err
			}
			a.logger.Info("cross-check passed", zap.Bool("strict", strict), zap.Float64("tolerance", tolerance))
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&tolerance, "tolerance", 0, "absolute tolerance on the fraction (defaults to compare.tolerance)")
	f.StringSliceVar(&sources, "sources", nil, "sources to compare (defaults to compare.sources)")
	f.BoolVar(&strict, "strict", false, "check each source against the fixture with its own tolerance")
	return cmd
}

func printReport(cmd *cobra.Command, r *crosscheck.Report) error {
	headers := []string{"Time"}
	if r.Reference != nil {
		headers = append(headers, crosscheck.ReferenceName)
	}
	for _, s := range r.Series {
		headers = append(headers, s.Source)
	}

	rows := make([][]string, len(r.Times))
	for i, t := range r.Times {
		row := []string{t.Format(time.RFC3339)}
		if r.Reference != nil {
			row = append(row, fmt.Sprintf("%.6f", r.Reference[i]))
		}
		for _, s := range r.Series {
			row = append(row, fmt.Sprintf("%.6f", s.Values[i]))
		}
		rows[i] = row
	}
	out := cmd.OutOrStdout()
	if err := renderTable(out, "Illuminated fraction", headers, rows); err != nil {
		return err
	}

	diffs := make([][]string, 0, len(r.Pairs)+len(r.RefDiffs))
	for _, d := range append(append([]crosscheck.Diff(nil), r.Pairs...), r.RefDiffs...) {
		diffs = append(diffs, []string{d.A, d.B, fmt.Sprintf("%.6f", d.Max), d.At.Format(time.RFC3339)})
	}
	if len(diffs) == 0 {
		return nil
	}
	return renderTable(out, "Largest differences", []string{"A", "B", "Max |Δ|", "At"}, diffs)
}
