package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type illumRow struct {
	Time       time.Time `json:"time"`
	Fraction   float64   `json:"fraction"`
	PhaseAngle float64   `json:"phase_angle"`
	Altitude   float64   `json:"altitude"`
	Azimuth    float64   `json:"azimuth"`
}

func newIllumCmd(a *app) *cobra.Command {
	var (
		start, end string
		step       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "illum [time...]",
		Short: "Illuminated fraction of the Moon at one or more instants",
		Long: `Prints the illuminated fraction of the Moon's disk (0 new, 1 full), the
phase angle and the Moon's apparent altitude/azimuth for the observer.

Instants are given as arguments, or as a --start/--end/--step range.
Without either, the current time is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := a.cfg.NewObserver()
			if err != nil {
				return err
			}

			times, err := instants(args, start, end, step, obs.Timezone)
			if err != nil {
				return err
			}

			fractions, err := obs.MoonIllumination(times)
			if err != nil {
				return err
			}
			angles, err := obs.MoonPhaseAngle(times)
			if err != nil {
				return err
			}

			rows := make([]illumRow, len(times))
			for i, t := range times {
				h, err := obs.MoonAltAz(t)
				if err != nil {
					return err
				}
				rows[i] = illumRow{
					Time:       t,
					Fraction:   fractions[i],
					PhaseAngle: angles[i],
					Altitude:   h.Altitude,
					Azimuth:    h.Azimuth,
				}
			}
			a.logger.Debug("illumination computed", zap.Stringer("observer", obs), zap.Int("instants", len(rows)))

			if a.json() {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			table := make([][]string, len(rows))
			for i, r := range rows {
				table[i] = []string{
					r.Time.Format(time.RFC3339),
					formatFraction(r.Fraction),
					fmt.Sprintf("%.2f°", r.PhaseAngle),
					fmt.Sprintf("%.2f°", r.Altitude),
					fmt.Sprintf("%.2f°", r.Azimuth),
				}
			}
			return renderTable(cmd.OutOrStdout(), "Moon illumination, "+obs.String(),
				[]string{"Time", "Fraction", "Phase angle", "Altitude", "Azimuth"}, table)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first instant of a range")
	cmd.Flags().StringVar(&end, "end", "", "last instant of a range (inclusive)")
	cmd.Flags().DurationVar(&step, "step", 24*time.Hour, "spacing of a range")
	return cmd
}

// maxInstants bounds a --start/--end/--step range.
const maxInstants = 100000

func instants(args []string, start, end string, step time.Duration, loc *time.Location) ([]time.Time, error) {
	if len(args) > 0 && (start != "" || end != "") {
		return nil, errors.New("give instants as arguments or as --start/--end, not both")
	}

	if start == "" && end == "" {
		if len(args) == 0 {
			return []time.Time{time.Now().In(loc)}, nil
		}
		out := make([]time.Time, len(args))
		for i, s := range args {
			t, err := parseTime(s, loc)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	}

	if start == "" || end == "" {
		return nil, errors.New("--start and --end must be given together")
	}
	if step <= 0 {
		return nil, fmt.Errorf("--step must be positive, got %s", step)
	}
	from, err := parseTime(start, loc)
	if err != nil {
		return nil, err
	}
	to, err := parseTime(end, loc)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("--end %s is before --start %s", end, start)
	}
	if n := to.Sub(from) / step; n >= maxInstants {
		return nil, fmt.Errorf("range spans %d instants, limit is %d", n+1, maxInstants)
	}

	var out []time.Time
	for t := from; !t.After(to); t = t.Add(step) {
		out = append(out, t)
	}
	return out, nil
}
