// Command lunarglide computes Moon illumination, phases and rise/set times.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/lunarglide/internal/config"
	"github.com/thurmanmarka/lunarglide/internal/logging"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	// Overrides; applied only when the flag was set.
	lat, lon float64
	source   string
	tz       string
	format   string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "lunarglide",
		Short: "Moon illumination, phases and rise/set times",
		Long: `lunarglide computes the illuminated fraction of the Moon's disk for an
observer, and the Sun and Moon positions it is derived from.

Configuration is read from --config (default ` + config.DefaultPath() + `),
then LUNARGLIDE_* environment variables, then command-line flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath(), "path to the YAML configuration")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.Float64Var(&a.lat, "lat", 0, "observer latitude in degrees (north positive)")
	pf.Float64Var(&a.lon, "lon", 0, "observer longitude in degrees (east positive, west negative)")
	pf.StringVar(&a.source, "source", "", "ephemeris source: analytic or meeus")
	pf.StringVar(&a.tz, "tz", "", "IANA time zone for dates and output (e.g. America/Phoenix)")
	pf.StringVarP(&a.format, "output", "o", "", "output format: table or json")

	root.AddCommand(
		newIllumCmd(a),
		newPhaseCmd(a),
		newRiseSetCmd(a),
		newCompareCmd(a),
		newReferenceCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") {
		cfg.Observer.Lat = a.lat
	}
	if flags.Changed("lon") {
		cfg.Observer.Lon = a.lon
	}
	if flags.Changed("source") {
		cfg.Ephemeris.Source = a.source
	}
	if flags.Changed("tz") {
		cfg.Observer.Timezone = a.tz
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("path", a.configPath),
		zap.Float64("lat", cfg.Observer.Lat),
		zap.Float64("lon", cfg.Observer.Lon),
		zap.String("source", cfg.Ephemeris.Source))

	if cfg.Observer.Lat == 0 && cfg.Observer.Lon == 0 {
		a.logger.Warn("lat=0 lon=0 (Gulf of Guinea); set --lat and --lon for a real location")
	}
	return nil
}

func (a *app) json() bool {
	return a.cfg.Output.Format == config.FormatJSON
}
