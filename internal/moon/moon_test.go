package moon

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/lunarglide/internal/topo"
)

func TestGeocentric_MeeusExample47a(t *testing.T) {
	// 1992 April 12, 0h TD: α = 134.688470°, δ = 13.768368°, Δ = 368409.7 km.
	// The truncated series is good to a few tenths of a degree.
	eq := Geocentric(time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC))

	assert.InDelta(t, 134.688470, eq.RA, 0.5)
	assert.InDelta(t, 13.768368, eq.Dec, 0.5)
	assert.InDelta(t, 368409.7, eq.Distance, 1000)
}

func TestGeocentric_DistanceBounds(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		eq := Geocentric(start.Add(time.Duration(i) * 12 * time.Hour))
		assert.GreaterOrEqual(t, eq.Distance, 355000.0)
		assert.LessOrEqual(t, eq.Distance, 407500.0)
		assert.GreaterOrEqual(t, eq.RA, 0.0)
		assert.Less(t, eq.RA, 360.0)
		assert.LessOrEqual(t, math.Abs(eq.Dec), 29.0)
	}
}

func TestEclipticToEquatorial(t *testing.T) {
	eps := 23.44 * math.Pi / 180

	ra, dec := EclipticToEquatorial(0, 0, eps)
	assert.InDelta(t, 0, ra, 1e-12)
	assert.InDelta(t, 0, dec, 1e-12)

	// Summer solstice point: λ = 90° maps to α = 90°, δ = ε.
	ra, dec = EclipticToEquatorial(math.Pi/2, 0, eps)
	assert.InDelta(t, math.Pi/2, ra, 1e-12)
	assert.InDelta(t, eps, dec, 1e-12)
}

func TestHorizonAltitude(t *testing.T) {
	assert.InDelta(t, baseHorizonDeg, HorizonAltitude(meanDistanceKm), 1e-12)
	assert.Equal(t, baseHorizonDeg, HorizonAltitude(0))

	// Near perigee the disk is larger, so its centre must sink further
	// before the upper limb clears the horizon.
	perigee, apogee := HorizonAltitude(356500), HorizonAltitude(406700)
	assert.Less(t, perigee, baseHorizonDeg)
	assert.Greater(t, apogee, baseHorizonDeg)
	assert.InDelta(t, 0.6*(406700-356500)/meanDistanceKm, apogee-perigee, 1e-12)
}

// References are published tables for 2025-11-30, to the second.
func TestEventsForDate(t *testing.T) {
	const tolerance = 2 * time.Minute

	cases := []struct {
		name      string
		tz        string
		site      topo.Site
		rise, set [3]int
	}{
		{"Phoenix", "America/Phoenix", topo.Site{Lat: 33.4484, Lon: -112.0740}, [3]int{14, 10, 27}, [3]int{2, 13, 19}},
		{"NewYork", "America/New_York", topo.Site{Lat: 40.7128, Lon: -74.0060}, [3]int{13, 29, 45}, [3]int{1, 36, 27}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := time.LoadLocation(tc.tz)
			require.NoError(t, err)

			date := time.Date(2025, 11, 30, 0, 0, 0, 0, loc)
			ev := EventsForDate(tc.site, date)
			require.True(t, ev.OKRise)
			require.True(t, ev.OKSet)

			wantRise := time.Date(2025, 11, 30, tc.rise[0], tc.rise[1], tc.rise[2], 0, loc)
			wantSet := time.Date(2025, 11, 30, tc.set[0], tc.set[1], tc.set[2], 0, loc)
			assert.WithinDuration(t, wantRise, ev.Rise, tolerance)
			assert.WithinDuration(t, wantSet, ev.Set, tolerance)
		})
	}
}
