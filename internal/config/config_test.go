package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultTFinal, cfg.TFinal)
	assert.Equal(t, DefaultPoints, cfg.Points)
	assert.Equal(t, "rk45", cfg.Method)
	assert.Equal(t, DefaultRTol, cfg.RTol)
	assert.Equal(t, DefaultATol, cfg.ATol)
	assert.Equal(t, DefaultPhaseRate, cfg.Model.PhaseRate)
	assert.Equal(t, DefaultDephasingRate, cfg.Model.DephasingRate)
	assert.False(t, cfg.Validate)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TFinal = 25
	cfg.Points = 1000
	cfg.Model.MixingRate = 0.5
	cfg.Validate = true

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFillsDefaults(t *testing.T) {
	// A partial file only overrides what it names.
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("t_final: 3.5\ninterferometer:\n  dephasing_rate: 0.8\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.TFinal)
	assert.Equal(t, 0.8, cfg.Model.DephasingRate)
	assert.Equal(t, DefaultPoints, cfg.Points)
	assert.Equal(t, DefaultPhaseRate, cfg.Model.PhaseRate)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("t_final: [not a number"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
