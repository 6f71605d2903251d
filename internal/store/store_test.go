package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() (RunMetadata, []float64, []Series) {
	meta := RunMetadata{
		Model:  "interferometer",
		TFinal: 10,
		Points: 3,
		Method: "rk45",
		RTol:   1e-8,
		ATol:   1e-10,
	}
	times := []float64{0, 5, 10}
	series := []Series{
		{Name: "baseline_coherence", Values: []float64{0.5, 0.02489353, 0.00123938}},
		{Name: "baseline_purity", Values: []float64{1, 0.50123909, 0.50000307}},
	}
	return meta, times, series
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	meta, times, series := sampleRun()
	runID, err := s.Save(meta, times, series)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "interferometer_"))

	loaded, err := s.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, loaded.ID)
	assert.Equal(t, meta.Model, loaded.Model)
	assert.Equal(t, meta.TFinal, loaded.TFinal)
	assert.Equal(t, []string{"baseline_coherence", "baseline_purity"}, loaded.Columns)
	assert.False(t, loaded.Timestamp.IsZero())

	gotTimes, gotSeries, err := s.LoadSeries(runID)
	require.NoError(t, err)
	assert.Equal(t, times, gotTimes)
	require.Len(t, gotSeries, 2)
	for i := range series {
		assert.Equal(t, series[i].Name, gotSeries[i].Name)
		require.Len(t, gotSeries[i].Values, len(series[i].Values))
		for j := range series[i].Values {
			assert.InDelta(t, series[i].Values[j], gotSeries[i].Values[j], 1e-11)
		}
	}
}

func TestSaveRejectsRaggedSeries(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	meta, times, series := sampleRun()
	series[1].Values = series[1].Values[:2]
	_, err := s.Save(meta, times, series)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline_purity")
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	meta, times, series := sampleRun()
	runID, err := s.Save(meta, times, series)
	require.NoError(t, err)

	runs, err = s.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())
	_, err := s.Load("no_such_run")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	meta, times, series := sampleRun()
	meta.ID = "interferometer_1"

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, times, series))
	out := buf.String()
	assert.Contains(t, out, `"interferometer_1"`)
	assert.Contains(t, out, `"baseline_coherence"`)
	assert.Contains(t, out, `"times"`)
}

func TestExportCSV(t *testing.T) {
	_, times, series := sampleRun()

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, times, series))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,baseline_coherence,baseline_purity", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,"))
}
