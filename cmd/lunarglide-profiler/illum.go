package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/lunarglide"
)

// CSV format:
//
//	time,fraction
//	1990-01-01T00:00:00Z,0.15475513880925418
//	1990-03-01 06:00,0.19484233284757257
//
// time is RFC3339, or "YYYY-MM-DD HH:MM[:SS]" in --tz.
func newIllumCmd(p *profiler) *cobra.Command {
	return &cobra.Command{
		Use:   "illum",
		Short: "Profile the illuminated fraction against a time,fraction table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.runIllum(cmd)
		},
	}
}

type illumSample struct {
	line int
	time time.Time
	ref  float64
}

func (p *profiler) runIllum(cmd *cobra.Command) error {
	records, first, err := p.readRecords("time")
	if err != nil {
		return err
	}

	var (
		samples []illumSample
		skipped int
	)
	for i, row := range records {
		line := first + i
		if len(row) < 2 {
			p.logger.Warn("expected 2 columns (time,fraction), skipping", zap.Int("row", line), zap.Int("columns", len(row)))
			skipped++
			continue
		}
		t, err := parseInstant(strings.TrimSpace(row[0]), p.loc)
		if err != nil {
			p.logger.Warn("invalid time, skipping", zap.Int("row", line), zap.Error(err))
			skipped++
			continue
		}
		ref, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || ref < 0 || ref > 1 {
			p.logger.Warn("invalid fraction, skipping", zap.Int("row", line), zap.String("value", row[1]))
			skipped++
			continue
		}
		samples = append(samples, illumSample{line: line, time: t, ref: ref})
	}

	obs, err := lunarglide.NewObserver(p.coords(), lunarglide.WithSource(p.src), lunarglide.WithTimezone(p.loc))
	if err != nil {
		return err
	}
	times := make([]time.Time, len(samples))
	for i, s := range samples {
		times[i] = s.time
	}
	got, err := obs.MoonIllumination(times)
	if err != nil {
		return err
	}

	out, closeOut, err := p.outWriter([]string{"time", "ref", "got", "err", "signed"})
	if err != nil {
		return err
	}

	var absStats, signedStats stats
	worst := illumSample{}
	for i, s := range samples {
		signed := got[i] - s.ref
		absErr := math.Abs(signed)
		if absErr > absStats.max || absStats.count == 0 {
			worst = s
		}
		absStats.add(absErr)
		signedStats.add(signed)

		p.logger.Debug("sample",
			zap.Int("row", s.line),
			zap.Time("time", s.time),
			zap.Float64("ref", s.ref),
			zap.Float64("got", got[i]),
			zap.Float64("err", absErr))

		if out != nil {
			rec := []string{
				s.time.Format(time.RFC3339),
				strconv.FormatFloat(s.ref, 'f', 6, 64),
				strconv.FormatFloat(got[i], 'f', 6, 64),
				strconv.FormatFloat(absErr, 'f', 6, 64),
				strconv.FormatFloat(signed, 'f', 6, 64),
			}
			if err := out.Write(rec); err != nil {
				p.logger.Error("failed to write outcsv row", zap.Int("row", s.line), zap.Error(err))
			}
		}
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to write outcsv: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== lunarglide profiler summary ===")
	fmt.Fprintf(w, "Mode:    MOON ILLUMINATION (%s)\n", p.src)
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", p.lat, p.lon)
	fmt.Fprintf(w, "TZ:      %s\n", p.loc)
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped\n", len(samples), skipped)

	if absStats.count == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return nil
	}
	absStats.print(w, "Fraction error (absolute)", 6)
	signedStats.print(w, "Fraction error (signed, ours - ref)", 6)
	fmt.Fprintf(w, "\nWorst row: %d at %s\n", worst.line, worst.time.Format(time.RFC3339))
	return nil
}

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func parseInstant(s string, loc *time.Location) (time.Time, error) {
	var err error
	for _, layout := range instantLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse %q: %w", s, err)
}
