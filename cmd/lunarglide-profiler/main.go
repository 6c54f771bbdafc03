// Command lunarglide-profiler measures lunarglide against reference tables:
// illuminated fraction (time,fraction) or rise/set times (date,rise,set).
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/lunarglide"
	"github.com/thurmanmarka/lunarglide/internal/logging"
)

type profiler struct {
	lat, lon float64
	tzName   string
	source   string
	refCSV   string
	outCSV   string
	verbose  bool

	loc    *time.Location
	src    lunarglide.Source
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	p := &profiler{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "lunarglide-profiler",
		Short:        "Compare lunarglide with reference ephemeris tables",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = p.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.Float64Var(&p.lat, "lat", 0, "latitude in degrees (north positive)")
	pf.Float64Var(&p.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	pf.StringVar(&p.tzName, "tz", "UTC", "IANA time zone of the reference table")
	pf.StringVar(&p.source, "source", "analytic", "ephemeris source: analytic or meeus")
	pf.StringVar(&p.refCSV, "refcsv", "", "path to the reference CSV")
	pf.StringVar(&p.outCSV, "outcsv", "", "optional path to write per-row errors")
	pf.BoolVarP(&p.verbose, "verbose", "v", false, "log per-row errors instead of only the summary")

	root.AddCommand(newIllumCmd(p), newRiseSetCmd(p))
	return root
}

func (p *profiler) setup() error {
	logger, err := logging.New("info", p.verbose)
	if err != nil {
		return err
	}
	p.logger = logger

	if p.refCSV == "" {
		return fmt.Errorf("missing --refcsv (path to reference CSV)")
	}
	if p.loc, err = time.LoadLocation(p.tzName); err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", p.tzName, err)
	}
	if p.src, err = lunarglide.ParseSource(p.source); err != nil {
		return err
	}
	if p.lat == 0 && p.lon == 0 {
		p.logger.Warn("lat=0 lon=0 (Gulf of Guinea); did you mean to set --lat/--lon?")
	}
	return nil
}

func (p *profiler) coords() lunarglide.Coordinates {
	return lunarglide.Coordinates{Lat: p.lat, Lon: p.lon}
}

// readRecords returns the CSV rows, minus a header whose first cell is header.
func (p *profiler) readRecords(header string) ([][]string, int, error) {
	f, err := os.Open(p.refCSV)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open refcsv %q: %w", p.refCSV, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validated per row
	r.Comment = '#'

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("empty CSV file %q", p.refCSV)
	}

	// Line numbers reported to the user are 1-based.
	first := 1
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), header) {
		records = records[1:]
		first = 2
	}
	return records, first, nil
}

// outWriter opens --outcsv with header, or returns nil when it is unset.
func (p *profiler) outWriter(header []string) (*csv.Writer, func() error, error) {
	if p.outCSV == "" {
		return nil, func() error { return nil }, nil
	}
	f, err := os.Create(p.outCSV)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create outcsv %q: %w", p.outCSV, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to write outcsv header: %w", err)
	}
	closeFn := func() error {
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return w, closeFn, nil
}
