package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/lunarglide"
)

// CSV format:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//
// date is YYYY-MM-DD; rise/set are HH:MM[:SS] local times in --tz. In
// twilight mode rise is dawn and set is dusk.
func newRiseSetCmd(p *profiler) *cobra.Command {
	var (
		bodyS    string
		twilight string
		year     int
	)

	cmd := &cobra.Command{
		Use:   "riseset",
		Short: "Profile rise/set or twilight times against a date,rise,set table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.runRiseSet(cmd, bodyS, twilight, year)
		},
	}

	f := cmd.Flags()
	f.StringVar(&bodyS, "body", "sun", "celestial body: sun or moon")
	f.StringVar(&twilight, "twilight", "", "twilight kind: civil, nautical, astronomical (sun only)")
	f.IntVar(&year, "year", 0, "year of the table (optional, used for sanity checks)")
	return cmd
}

func (p *profiler) runRiseSet(cmd *cobra.Command, bodyS, twilight string, year int) error {
	var body lunarglide.Body
	switch strings.ToLower(bodyS) {
	case "sun":
		body = lunarglide.Sun
	case "moon":
		body = lunarglide.Moon
	default:
		return fmt.Errorf("unsupported body %q (use sun or moon)", bodyS)
	}

	modeDesc := strings.ToUpper(body.String())
	var kind lunarglide.TwilightKind
	useTwilight := twilight != ""
	if useTwilight {
		if body != lunarglide.Sun {
			return fmt.Errorf("twilight mode only supported for --body sun")
		}
		switch strings.ToLower(twilight) {
		case "civil":
			kind = lunarglide.TwilightCivil
		case "nautical":
			kind = lunarglide.TwilightNautical
		case "astronomical":
			kind = lunarglide.TwilightAstronomical
		default:
			return fmt.Errorf("unknown twilight kind %q (use civil, nautical, or astronomical)", twilight)
		}
		modeDesc = fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(twilight))
	}

	records, first, err := p.readRecords("date")
	if err != nil {
		return err
	}

	obs, err := lunarglide.NewObserver(p.coords(), lunarglide.WithSource(p.src), lunarglide.WithTimezone(p.loc))
	if err != nil {
		return err
	}

	out, closeOut, err := p.outWriter([]string{
		"date", "body", "mode",
		"rise_err", "set_err", "rise_signed", "set_signed",
		"phase_fraction", "phase_name", "phase_elongation", "phase_waxing",
	})
	if err != nil {
		return err
	}

	var (
		riseStats, setStats             stats
		riseSignedStats, setSignedStats stats
		skipped                         int
	)

	for i, row := range records {
		line := first + i
		if len(row) < 3 {
			p.logger.Warn("expected 3 columns (date,rise,set), skipping", zap.Int("row", line), zap.Int("columns", len(row)))
			skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])

		date, err := time.ParseInLocation("2006-01-02", dateStr, p.loc)
		if err != nil {
			p.logger.Warn("invalid date, skipping", zap.Int("row", line), zap.String("date", dateStr), zap.Error(err))
			skipped++
			continue
		}
		if year != 0 && date.Year() != year {
			p.logger.Warn("date outside --year", zap.Int("row", line), zap.String("date", dateStr), zap.Int("year", year))
		}

		refRise, errRise := parseLocalTime(date, strings.TrimSpace(row[1]), p.loc)
		refSet, errSet := parseLocalTime(date, strings.TrimSpace(row[2]), p.loc)
		if errRise != nil || errSet != nil {
			p.logger.Warn("invalid rise/set time, skipping", zap.Int("row", line), zap.Strings("fields", row))
			skipped++
			continue
		}

		var rs lunarglide.RiseSet
		if useTwilight {
			rs, err = obs.Twilight(date, kind)
		} else {
			rs, err = obs.RiseSet(body, date)
		}
		if err != nil {
			p.logger.Warn("lunarglide error, skipping", zap.Int("row", line), zap.Error(err))
			skipped++
			continue
		}

		gotRise, gotSet := rs.Rise.In(p.loc), rs.Set.In(p.loc)
		riseErr, setErr := diffMinutes(gotRise, refRise), diffMinutes(gotSet, refSet)
		riseSigned, setSigned := diffMinutesSigned(gotRise, refRise), diffMinutesSigned(gotSet, refSet)
		riseStats.add(riseErr)
		setStats.add(setErr)
		riseSignedStats.add(riseSigned)
		setSignedStats.add(setSigned)

		p.logger.Debug("row",
			zap.String("date", dateStr),
			zap.String("mode", modeDesc),
			zap.Float64("rise_err_min", riseErr),
			zap.String("rise", gotRise.Format("15:04")),
			zap.String("ref_rise", refRise.Format("15:04")),
			zap.Float64("set_err_min", setErr),
			zap.String("set", gotSet.Format("15:04")),
			zap.String("ref_set", refSet.Format("15:04")))

		if out == nil {
			continue
		}

		// Moon runs carry the phase at local noon.
		var phaseFraction, phaseName, phaseElongation, phaseWaxing string
		if body == lunarglide.Moon {
			mp, err := obs.MoonPhase(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, p.loc))
			if err != nil {
				p.logger.Warn("failed to compute Moon phase", zap.Int("row", line), zap.Error(err))
			} else {
				phaseFraction = fmt.Sprintf("%.6f", mp.Fraction)
				phaseName = mp.Name
				phaseElongation = fmt.Sprintf("%.3f", mp.Elongation)
				phaseWaxing = "waning"
				if mp.Waxing {
					phaseWaxing = "waxing"
				}
			}
		}

		rec := []string{
			dateStr, strings.ToUpper(body.String()), modeDesc,
			fmt.Sprintf("%.6f", riseErr), fmt.Sprintf("%.6f", setErr),
			fmt.Sprintf("%.6f", riseSigned), fmt.Sprintf("%.6f", setSigned),
			phaseFraction, phaseName, phaseElongation, phaseWaxing,
		}
		if err := out.Write(rec); err != nil {
			p.logger.Error("failed to write outcsv row", zap.Int("row", line), zap.Error(err))
		}
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to write outcsv: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== lunarglide profiler summary ===")
	fmt.Fprintf(w, "Mode:    %s\n", modeDesc)
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", p.lat, p.lon)
	fmt.Fprintf(w, "TZ:      %s\n", p.loc)
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped\n", len(records)-skipped, skipped)

	if riseStats.count == 0 && setStats.count == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return nil
	}
	riseStats.print(w, "Rise error (minutes)", 3)
	setStats.print(w, "Set error (minutes)", 3)
	riseSignedStats.print(w, "Rise signed error (minutes, ours - ref)", 3)
	setSignedStats.print(w, "Set signed error (minutes, ours - ref)", 3)
	return nil
}

func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}
