package reference

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	wantTimes := []time.Time{
		time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1990, 3, 1, 6, 0, 0, 0, time.UTC),
		time.Date(1990, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1990, 11, 1, 18, 0, 0, 0, time.UTC),
	}
	wantValues := []float64{0.15475513880925418, 0.19484233284757257, 0.6170840254669668, 0.9780219372563843}

	require.Len(t, f.Times, len(wantTimes))
	for i := range wantTimes {
		assert.True(t, wantTimes[i].Equal(f.Times[i]), "time %d: got %s", i, f.Times[i])
	}
	if diff := cmp.Diff(wantValues, f.Illumination); diff != "" {
		t.Errorf("illumination mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, Location{Lat: 19, Lon: -155, Elevation: 0}, f.Location)
	assert.Equal(t, "pyephem", f.Generator)
	assert.Equal(t, 1.0, f.Tolerance.Legacy)

	tol, ok := f.StrictTolerance("Meeus")
	require.True(t, ok)
	assert.Equal(t, 0.005, tol)

	_, ok = f.StrictTolerance("jplephem")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"mismatch": "times: [1990-01-01T00:00:00Z]\nillumination: [0.1, 0.2]\n",
		"empty":    "illumination: []\n",
		"range":    "times: [1990-01-01T00:00:00Z]\nillumination: [1.5]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidFixture)
		})
	}

	_, err := Parse([]byte("times: [not, a: list"))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "[]", Format(nil))
	assert.Equal(t, "[1.0, 0.0, 0.5]", Format([]float64{1, 0, 0.5}))
	assert.Equal(t,
		"[0.15475513880925418, 0.9780219372563843]",
		Format([]float64{0.15475513880925418, 0.9780219372563843}))
}

func TestFormat_RoundTrips(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	out := strings.Trim(Format(f.Illumination), "[]")
	for i, s := range strings.Split(out, ", ") {
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.Equal(t, f.Illumination[i], v)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []float64{0.25}))
	assert.Equal(t, "[0.25]\n", buf.String())
}
