package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/lunarglide"
)

type riseSetOutput struct {
	Body      string     `json:"body"`
	Mode      string     `json:"mode"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Date      string     `json:"date"` // YYYY-MM-DD
	Timezone  string     `json:"timezone"`
	Rise      *time.Time `json:"rise,omitempty"`
	Set       *time.Time `json:"set,omitempty"`
	Daylight  float64    `json:"daylight_hours,omitempty"`
}

func newRiseSetCmd(a *app) *cobra.Command {
	var (
		bodyS, dateS, event, twilight string
	)

	cmd := &cobra.Command{
		Use:   "riseset",
		Short: "Sun or Moon rise/set, or twilight, for a local date",
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := a.cfg.NewObserver()
			if err != nil {
				return err
			}

			body, err := parseBody(bodyS)
			if err != nil {
				return err
			}

			date := time.Now().In(obs.Timezone)
			if dateS != "" {
				if date, err = time.ParseInLocation("2006-01-02", dateS, obs.Timezone); err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateS, err)
				}
			}

			out := riseSetOutput{
				Body:      strings.ToLower(body.String()),
				Mode:      "rise/set",
				Latitude:  obs.Location.Lat,
				Longitude: obs.Location.Lon,
				Date:      date.Format("2006-01-02"),
				Timezone:  obs.Timezone.String(),
			}

			var rs lunarglide.RiseSet
			if twilight != "" {
				if body != lunarglide.Sun {
					return errors.New("--twilight is only supported for --body sun")
				}
				kind, err := parseTwilight(twilight)
				if err != nil {
					return err
				}
				out.Mode = strings.ToLower(twilight) + " twilight"
				rs, err = obs.Twilight(date, kind)
				if err != nil {
					return err
				}
			} else {
				rs, err = obs.RiseSet(body, date)
				if err != nil {
					return err
				}
				if body == lunarglide.Sun && !rs.Rise.IsZero() && !rs.Set.IsZero() {
					out.Daylight = rs.Set.Sub(rs.Rise).Hours()
				}
			}

			event = strings.ToLower(event)
			switch event {
			case "rise":
				out.Rise = nonZero(rs.Rise)
			case "set":
				out.Set = nonZero(rs.Set)
			case "both", "":
				out.Rise, out.Set = nonZero(rs.Rise), nonZero(rs.Set)
			default:
				return fmt.Errorf("unknown --event %q (use rise, set or both)", event)
			}

			if a.json() {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			var rows [][]string
			if event != "set" {
				rows = append(rows, []string{"Rise", formatClock(rs.Rise)})
			}
			if event != "rise" {
				rows = append(rows, []string{"Set", formatClock(rs.Set)})
			}
			if out.Daylight > 0 {
				rows = append(rows, []string{"Daylight", fmt.Sprintf("%.2f h", out.Daylight)})
			}
			title := fmt.Sprintf("%s %s for lat=%.6f lon=%.6f on %s (%s)",
				body, out.Mode, out.Latitude, out.Longitude, out.Date, out.Timezone)
			return renderTable(cmd.OutOrStdout(), title, []string{"Event", "Time"}, rows)
		},
	}

	f := cmd.Flags()
	f.StringVar(&bodyS, "body", "sun", "celestial body: sun or moon")
	f.StringVar(&dateS, "date", "", "local date YYYY-MM-DD (defaults to today)")
	f.StringVar(&event, "event", "both", "event: rise, set or both")
	f.StringVar(&twilight, "twilight", "", "twilight kind: civil, nautical or astronomical (sun only)")
	return cmd
}

func parseBody(s string) (lunarglide.Body, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sun":
		return lunarglide.Sun, nil
	case "moon":
		return lunarglide.Moon, nil
	default:
		return 0, fmt.Errorf("unsupported body %q (use sun or moon)", s)
	}
}

func parseTwilight(s string) (lunarglide.TwilightKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "civil":
		return lunarglide.TwilightCivil, nil
	case "nautical":
		return lunarglide.TwilightNautical, nil
	case "astronomical":
		return lunarglide.TwilightAstronomical, nil
	default:
		return 0, fmt.Errorf("unknown twilight kind %q (use civil, nautical or astronomical)", s)
	}
}

func nonZero(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
