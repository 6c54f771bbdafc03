package solver

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sine returns a function with a 24h period that is zero at 06:00 (rising)
// and 18:00 (setting) UTC.
func sine(day time.Time) Func {
	return func(t time.Time) float64 {
		h := t.Sub(day).Hours()
		return 10 * math.Sin(2*math.Pi*(h-6)/24)
	}
}

func TestFindCrossing(t *testing.T) {
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	f := sine(day)
	end := day.Add(24 * time.Hour)

	rise := FindCrossing(f, day, end, 0, Rising, DaySearch)
	require.True(t, rise.OK)
	assert.WithinDuration(t, day.Add(6*time.Hour), rise.Time, DaySearch.Tolerance)

	set := FindCrossing(f, day, end, 0, Setting, DaySearch)
	require.True(t, set.OK)
	assert.WithinDuration(t, day.Add(18*time.Hour), set.Time, DaySearch.Tolerance)
}

func TestFindCrossing_Target(t *testing.T) {
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	// 10 sin(x) = 5 at x = 30°, i.e. two hours after the zero crossing.
	res := FindCrossing(sine(day), day, day.Add(24*time.Hour), 5, Rising, DaySearch)
	require.True(t, res.OK)
	assert.WithinDuration(t, day.Add(8*time.Hour), res.Time, time.Minute)
}

func TestFindCrossing_NoCrossing(t *testing.T) {
	day := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	res := FindCrossing(sine(day), day, day.Add(24*time.Hour), 20, Rising, DaySearch)
	assert.False(t, res.OK)
}

func TestFindCrossing_EmptyWindow(t *testing.T) {
	day := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	res := FindCrossing(sine(day), day, day, 0, Rising, Search{Steps: 1})
	assert.False(t, res.OK)
}
