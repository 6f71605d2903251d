// Package interferometry models a two-path interferometer as a 2-level
// system: |0> and |1> are the arms, relative phase accumulation is a
// σ_z Hamiltonian term, beam-splitter mixing a σ_x term, and decoherence
// enters through standard dephasing channels. Nothing here is
// SDCR-specific; the package only maps the domain onto core dynamics
// and symmetry selection.
package interferometry

import (
	"math"

	"github.com/dfeen87/sdcr-core/internal/algebra"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
)

// Params configures the interferometer-as-qubit model.
type Params struct {
	// PhaseRate is the relative phase accumulation rate between arms,
	// entering as (PhaseRate/2)·σ_z.
	PhaseRate float64
	// MixingRate is the beam-splitter mixing strength, entering as
	// (MixingRate/2)·σ_x.
	MixingRate float64
	// DephasingRate is the dephasing rate in the path basis
	// (σ_z Lindblad channel).
	DephasingRate float64
	// MixingDephasingRate adds an optional σ_x-basis dephasing channel
	// carrying off-diagonal noise.
	MixingDephasingRate float64
}

// DefaultParams matches the reference demonstration configuration.
func DefaultParams() Params {
	return Params{
		PhaseRate:     1.0,
		DephasingRate: 0.3,
	}
}

// BuildModel returns (H, L_ops) for the interferometer. Channels with
// zero rate are omitted; negative rates are rejected.
func BuildModel(p Params) (algebra.Matrix, []algebra.Matrix, error) {
	if p.DephasingRate < 0 {
		return algebra.Matrix{}, nil, &lindblad.RateSignError{Index: 0, Rate: p.DephasingRate}
	}
	if p.MixingDephasingRate < 0 {
		return algebra.Matrix{}, nil, &lindblad.RateSignError{Index: 1, Rate: p.MixingDephasingRate}
	}

	sx := algebra.PauliX()
	sz := algebra.PauliZ()
	h := sz.Scale(complex(0.5*p.PhaseRate, 0)).Add(sx.Scale(complex(0.5*p.MixingRate, 0)))

	var ops []algebra.Matrix
	if p.DephasingRate > 0 {
		ops = append(ops, sz.Scale(complex(math.Sqrt(p.DephasingRate), 0)))
	}
	if p.MixingDephasingRate > 0 {
		ops = append(ops, sx.Scale(complex(math.Sqrt(p.MixingDephasingRate), 0)))
	}
	return h, ops, nil
}

// InitialState returns |+><+|, equal superposition of the two paths.
func InitialState() algebra.Matrix {
	s := 1 / math.Sqrt2
	return algebra.DensityFromKet([]complex128{complex(s, 0), complex(s, 0)})
}
