package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTFinal        = 10.0
	DefaultPoints        = 400
	DefaultRTol          = 1e-8
	DefaultATol          = 1e-10
	DefaultPhaseRate     = 1.0
	DefaultDephasingRate = 0.3
)

type Config struct {
	TFinal   float64              `yaml:"t_final"`
	Points   int                  `yaml:"points"`
	Method   string               `yaml:"method"`
	RTol     float64              `yaml:"rtol"`
	ATol     float64              `yaml:"atol"`
	Model    InterferometerConfig `yaml:"interferometer"`
	Validate bool                 `yaml:"validate"`
}

type InterferometerConfig struct {
	PhaseRate           float64 `yaml:"phase_rate"`
	MixingRate          float64 `yaml:"mixing_rate"`
	DephasingRate       float64 `yaml:"dephasing_rate"`
	MixingDephasingRate float64 `yaml:"mixing_dephasing_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		TFinal: DefaultTFinal,
		Points: DefaultPoints,
		Method: "rk45",
		RTol:   DefaultRTol,
		ATol:   DefaultATol,
		Model: InterferometerConfig{
			PhaseRate:     DefaultPhaseRate,
			DephasingRate: DefaultDephasingRate,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
