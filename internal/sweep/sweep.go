// Package sweep scans one scalar parameter over a range and samples an
// observable at each point. It makes no domain assumptions; domain code
// supplies the model function.
package sweep

import "fmt"

// Config describes a one-dimensional sweep.
type Config struct {
	Min    float64
	Max    float64
	Points int
	Label  string
}

// DefaultConfig is the ε-range used by the SDCR exemplars.
func DefaultConfig() Config {
	return Config{
		Min:    1e-5,
		Max:    3e-4,
		Points: 100,
		Label:  "observable",
	}
}

// Run samples fn at Points evenly spaced values in [Min, Max] and
// returns the sample locations and values. The first fn error aborts
// the sweep.
func Run(cfg Config, fn func(x float64) (float64, error)) ([]float64, []float64, error) {
	if cfg.Points < 2 {
		return nil, nil, fmt.Errorf("sweep: points must be >= 2; got %d", cfg.Points)
	}
	if !(cfg.Max > cfg.Min) {
		return nil, nil, fmt.Errorf("sweep: range must satisfy max > min; got [%g, %g]", cfg.Min, cfg.Max)
	}

	xs := make([]float64, cfg.Points)
	ys := make([]float64, cfg.Points)
	step := (cfg.Max - cfg.Min) / float64(cfg.Points-1)
	for i := range xs {
		x := cfg.Min + float64(i)*step
		y, err := fn(x)
		if err != nil {
			return nil, nil, fmt.Errorf("sweep: %s at x=%g: %w", cfg.Label, x, err)
		}
		xs[i] = x
		ys[i] = y
	}
	return xs, ys, nil
}
