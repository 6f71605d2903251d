// Package neutrinos models two-flavor vacuum oscillations with an
// optional SDCR-induced geometric phase bias. The bias acts on the
// measurement-accessible oscillation phase only: no new particles, no
// exotic interactions, no change to intrinsic neutrino parameters.
package neutrinos

import (
	"fmt"
	"math"
)

// Params are two-flavor vacuum oscillation parameters with the SDCR
// modulation. Units: LKm in km, EGeV in GeV, DeltaM2eV2 in eV²,
// ThetaRad in radians; Epsilon and SymmetryWeight are dimensionless.
type Params struct {
	LKm        float64
	EGeV       float64
	DeltaM2eV2 float64
	ThetaRad   float64

	Epsilon        float64
	SymmetryWeight float64
}

// DefaultParams is a T2K-like configuration with maximal mixing and the
// SDCR modulation switched off.
func DefaultParams() Params {
	return Params{
		LKm:            295.0,
		EGeV:           0.6,
		DeltaM2eV2:     2.45e-3,
		ThetaRad:       math.Pi / 4,
		SymmetryWeight: 1.0,
	}
}

// OscillationPhase is the standard phenomenology factor
// 1.267 · Δm²(eV²) · L(km) / E(GeV).
func OscillationPhase(p Params) (float64, error) {
	if p.EGeV <= 0 {
		return 0, fmt.Errorf("neutrinos: EGeV must be > 0; got %g", p.EGeV)
	}
	if p.LKm < 0 {
		return 0, fmt.Errorf("neutrinos: LKm must be >= 0; got %g", p.LKm)
	}
	return 1.267 * p.DeltaM2eV2 * p.LKm / p.EGeV, nil
}

// GeometricPhaseBias is the SDCR bias, a symmetry-weighted fraction of
// the standard oscillation phase.
func GeometricPhaseBias(p Params) (float64, error) {
	phi0, err := OscillationPhase(p)
	if err != nil {
		return 0, err
	}
	return p.SymmetryWeight * p.Epsilon * phi0, nil
}

// EffectivePhase is the measured phase including the SDCR bias.
func EffectivePhase(p Params) (float64, error) {
	phi0, err := OscillationPhase(p)
	if err != nil {
		return 0, err
	}
	bias, err := GeometricPhaseBias(p)
	if err != nil {
		return 0, err
	}
	return phi0 + bias, nil
}

// SurvivalProbability is P(ν→ν) = 1 - sin²(2θ)·sin²(φ_eff).
func SurvivalProbability(p Params) (float64, error) {
	phi, err := EffectivePhase(p)
	if err != nil {
		return 0, err
	}
	s2 := math.Sin(2 * p.ThetaRad)
	sp := math.Sin(phi)
	return 1 - s2*s2*sp*sp, nil
}
