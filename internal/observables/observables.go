// Package observables extracts real scalars from density matrices for
// comparison and plotting. Every function is pure; nothing here filters
// or renormalizes its input.
package observables

import (
	"fmt"
	"math/cmplx"

	"github.com/dfeen87/sdcr-core/internal/algebra"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
)

// Func maps a density matrix to a real scalar.
type Func func(rho algebra.Matrix) (float64, error)

// Purity returns Tr(ρ²), a global coherence/mixedness diagnostic.
func Purity(rho algebra.Matrix) (float64, error) {
	return real(rho.Mul(rho).Trace()), nil
}

// Coherence01 returns |ρ_01| for a two-level system.
func Coherence01(rho algebra.Matrix) (float64, error) {
	if rho.Dim != 2 {
		return 0, &algebra.DimensionError{Op: "Coherence01", Dim: rho.Dim, Want: 2}
	}
	return cmplx.Abs(rho.At(0, 1)), nil
}

// Phase01 returns arg(ρ_01) for a two-level system. A phase proxy for
// demonstrations and null tests; use with caution.
func Phase01(rho algebra.Matrix) (float64, error) {
	if rho.Dim != 2 {
		return 0, &algebra.DimensionError{Op: "Phase01", Dim: rho.Dim, Want: 2}
	}
	return cmplx.Phase(rho.At(0, 1)), nil
}

// OffDiagonalNorm returns the Frobenius norm of the off-diagonal part.
// Basis-dependent but valid for any dimension.
func OffDiagonalNorm(rho algebra.Matrix) (float64, error) {
	off := rho.Clone()
	for i := 0; i < off.Dim; i++ {
		off.Set(i, i, 0)
	}
	return off.FrobeniusNorm(), nil
}

// TimeSeries applies an observable to every state of a trajectory,
// preserving time order.
func TimeSeries(traj *lindblad.Trajectory, fn Func) ([]float64, error) {
	out := make([]float64, len(traj.States))
	for i, rho := range traj.States {
		v, err := fn(rho)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CompareSeries returns the pointwise difference a - b, for residuals
// between SDCR and baseline runs.
func CompareSeries(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("observables: series must have same length; got %d vs %d", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}
