package main

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIllum(t *testing.T) {
	ref := writeFile(t, "illum.csv", `time,fraction
1990-01-01T00:00:00Z,0.15475513880925418
1990-03-01 06:00,0.19484233284757257
1990-06-01T12:00:00Z,0.6170840254669668
1990-11-01T18:00:00Z,0.9780219372563843
not-a-time,0.5
1990-11-02T18:00:00Z,1.7
`)
	outCSV := filepath.Join(t.TempDir(), "out.csv")

	out, err := execute(t, "illum", "--lat", "19", "--lon", "-155", "--source", "meeus",
		"--refcsv", ref, "--outcsv", outCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows:    4 (processed), 2 skipped")
	assert.Contains(t, out, "MOON ILLUMINATION (meeus)")

	f, err := os.Open(outCSV)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"time", "ref", "got", "err", "signed"}, rows[0])
}

func TestRiseSet(t *testing.T) {
	ref := writeFile(t, "sun.csv", `date,rise,set
2025-11-30,07:13,17:21
2025-11-28,bad,17:21
`)

	out, err := execute(t, "riseset", "--lat", "33.4484", "--lon", "-112.0740", "--tz", "America/Phoenix",
		"--refcsv", ref)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows:    1 (processed), 1 skipped")
	assert.Contains(t, out, "Rise error (minutes)")

	twilight := writeFile(t, "civil.csv", "2025-11-28,06:45,17:47\n")
	out, err = execute(t, "riseset", "--lat", "33.4484", "--lon", "-112.0740", "--tz", "America/Phoenix",
		"--refcsv", twilight, "--twilight", "civil")
	require.NoError(t, err)
	assert.Contains(t, out, "SUN (CIVIL TWILIGHT)")

	_, err = execute(t, "riseset", "--refcsv", twilight, "--body", "moon", "--twilight", "civil")
	assert.Error(t, err)
}

func TestMissingRefCSV(t *testing.T) {
	_, err := execute(t, "illum")
	assert.Error(t, err)

	_, err = execute(t, "illum", "--refcsv", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	var s stats
	assert.True(t, math.IsNaN(s.mean()))

	for _, v := range []float64{3, -4, math.NaN()} {
		s.add(v)
	}
	assert.Equal(t, 2, s.count)
	assert.Equal(t, -4.0, s.min)
	assert.Equal(t, 3.0, s.max)
	assert.InDelta(t, -0.5, s.mean(), 1e-12)
	assert.InDelta(t, math.Sqrt(12.5), s.rms(), 1e-12)
}
