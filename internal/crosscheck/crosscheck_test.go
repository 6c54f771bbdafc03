package crosscheck

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thurmanmarka/lunarglide"
	"github.com/thurmanmarka/lunarglide/internal/reference"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixtureRequest(t *testing.T) (Request, reference.Fixture) {
	t.Helper()
	fx, err := reference.Default()
	require.NoError(t, err)
	return Request{
		Times:     fx.Times,
		Location:  lunarglide.Coordinates{Lat: fx.Location.Lat, Lon: fx.Location.Lon},
		Reference: fx.Illumination,
	}, fx
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{SourceAnalytic, SourceMeeus, SourceSuncalc}, Names())
}

func TestRun_AllSources(t *testing.T) {
	req, fx := fixtureRequest(t)

	report, err := New(nil).Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Series, 3)
	for _, s := range report.Series {
		require.Len(t, s.Values, len(req.Times), s.Source)
		for _, v := range s.Values {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Len(t, report.Pairs, 3)
	assert.Len(t, report.RefDiffs, 3)

	require.NoError(t, report.VerifyReference(fx.Tolerance.Strict))
	require.NoError(t, report.Verify(fx.Tolerance.Strict[SourceSuncalc]))

	for _, d := range report.Pairs {
		if d.A == SourceAnalytic && d.B == SourceMeeus {
			assert.Less(t, d.Max, 5e-3)
		}
		t.Log(d)
	}
}

func TestRun_MatchesObserver(t *testing.T) {
	req, _ := fixtureRequest(t)
	req.Sources = []string{" Meeus "}

	report, err := New(nil).Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{" Meeus "}, req.Sources, "request must not be modified")

	obs, err := lunarglide.NewObserver(req.Location, lunarglide.WithSource(lunarglide.SourceMeeus))
	require.NoError(t, err)
	want, err := obs.MoonIllumination(req.Times)
	require.NoError(t, err)

	got, ok := report.Values(SourceMeeus)
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("meeus series (-want +got):\n%s", diff)
	}
	assert.Empty(t, report.Pairs)

	_, ok = report.Values(SourceSuncalc)
	assert.False(t, ok)
}

func TestRun_Errors(t *testing.T) {
	req, _ := fixtureRequest(t)

	bad := req
	bad.Sources = []string{"horizons"}
	_, err := New(nil).Run(context.Background(), bad)
	assert.ErrorIs(t, err, ErrUnknownSource)

	bad = req
	bad.Reference = bad.Reference[:1]
	_, err = New(nil).Run(context.Background(), bad)
	assert.ErrorIs(t, err, lunarglide.ErrLengthMismatch)

	bad = req
	bad.Location = lunarglide.Coordinates{Lat: 95}
	_, err = New(nil).Run(context.Background(), bad)
	assert.ErrorIs(t, err, lunarglide.ErrInvalidLocation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bad = req
	bad.Sources = []string{SourceSuncalc}
	_, err = New(nil).Run(ctx, bad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerify(t *testing.T) {
	at := time.Date(1990, time.June, 1, 12, 0, 0, 0, time.UTC)
	report := &Report{
		Pairs:    []Diff{{A: SourceAnalytic, B: SourceMeeus, Max: 0.004, At: at}},
		RefDiffs: []Diff{{A: SourceSuncalc, B: ReferenceName, Max: 0.012, At: at}},
	}

	assert.NoError(t, report.Verify(0.02))

	err := report.Verify(0.005)
	require.ErrorIs(t, err, ErrOutOfTolerance)
	assert.Contains(t, err.Error(), "suncalc vs reference")
	assert.NotContains(t, err.Error(), "analytic vs meeus")

	err = report.Verify(0.001)
	assert.ErrorIs(t, err, ErrOutOfTolerance)
	assert.Contains(t, err.Error(), "analytic vs meeus")

	assert.NoError(t, report.VerifyReference(map[string]float64{SourceSuncalc: 0.02}))
	assert.ErrorIs(t, report.VerifyReference(map[string]float64{SourceSuncalc: 0.01}), ErrOutOfTolerance)
	assert.NoError(t, report.VerifyReference(nil))
}

func TestVerify_WarnsOnLooseTolerance(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	req, fx := fixtureRequest(t)

	report, err := New(zap.New(core)).Run(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, report.Verify(fx.Tolerance.Legacy))
	assert.Equal(t, 1, logs.FilterMessage("non-restrictive tolerance").Len())

	require.NoError(t, report.Verify(0.05))
	assert.Equal(t, 1, logs.FilterMessage("non-restrictive tolerance").Len())
}
