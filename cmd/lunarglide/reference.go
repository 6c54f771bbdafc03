package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/lunarglide"
	"github.com/thurmanmarka/lunarglide/internal/crosscheck"
	"github.com/thurmanmarka/lunarglide/internal/reference"
)

func newReferenceCmd(a *app) *cobra.Command {
	var (
		source string
		stored bool
	)

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print illumination at the reference instants as a pasteable list",
		Long: `Computes the illuminated fraction at the instants and location of the
embedded reference fixture and prints it as

  [0.15475513880925418, 0.19484233284757257, ...]

so it can be copied into the fixture or a test. The values come from the
Meeus series unless --with names another source; ephemeris.source is not
consulted. --stored prints the values currently held by the fixture.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := reference.Default()
			if err != nil {
				return err
			}
			if stored {
				return reference.Write(cmd.OutOrStdout(), fx.Illumination)
			}

			values, err := referenceValues(cmd.Context(), a, fx, source)
			if err != nil {
				return err
			}
			return reference.Write(cmd.OutOrStdout(), values)
		},
	}

	cmd.Flags().StringVar(&source, "with", lunarglide.SourceMeeus.String(), "source: analytic, meeus or suncalc")
	cmd.Flags().BoolVar(&stored, "stored", false, "print the stored fixture values instead")
	return cmd
}

func referenceValues(ctx context.Context, a *app, fx reference.Fixture, source string) ([]float64, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "builtin" {
		source = lunarglide.SourceAnalytic.String()
	}

	report, err := crosscheck.New(a.logger).Run(ctx, crosscheck.Request{
		Times:    fx.Times,
		Location: lunarglide.Coordinates{Lat: fx.Location.Lat, Lon: fx.Location.Lon, Elevation: fx.Location.Elevation},
		Sources:  []string{source},
	})
	if err != nil {
		return nil, err
	}
	values, _ := report.Values(source)
	return values, nil
}
