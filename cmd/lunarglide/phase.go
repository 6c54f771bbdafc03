package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/lunarglide"
)

func newPhaseCmd(a *app) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Moon phase name, fraction and elongation",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := a.cfg.NewObserver()
			if err != nil {
				return err
			}

			t := time.Now().In(obs.Timezone)
			if at != "" {
				if t, err = parseTime(at, obs.Timezone); err != nil {
					return err
				}
			}

			phase, err := obs.MoonPhase(t)
			if err != nil {
				return fmt.Errorf("moon phase: %w", err)
			}

			if a.json() {
				return writeJSON(cmd.OutOrStdout(), phase)
			}
			return renderTable(cmd.OutOrStdout(),
				fmt.Sprintf("Moon phase at %s (%s)", phase.Time.Format(time.RFC3339), obs.Source),
				[]string{"Field", "Value"},
				phaseRows(phase))
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "instant in RFC3339 or YYYY-MM-DDTHH:MM (defaults to now)")
	return cmd
}

func phaseRows(p lunarglide.MoonPhase) [][]string {
	trend := "Waning (illumination decreasing)"
	if p.Waxing {
		trend = "Waxing (illumination increasing)"
	}
	return [][]string{
		{"Name", p.Name},
		{"Fraction", formatFraction(p.Fraction)},
		{"Phase angle", fmt.Sprintf("%.2f°", p.PhaseAngle)},
		{"Elongation", fmt.Sprintf("%.2f°", p.Elongation)},
		{"Trend", trend},
	}
}
