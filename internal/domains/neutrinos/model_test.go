package neutrinos

import (
	"math"
	"testing"
)

func TestOscillationPhase(t *testing.T) {
	p := DefaultParams()
	phi, err := OscillationPhase(p)
	if err != nil {
		t.Fatalf("OscillationPhase failed: %v", err)
	}
	want := 1.267 * p.DeltaM2eV2 * p.LKm / p.EGeV
	if math.Abs(phi-want) > 1e-12 {
		t.Errorf("phase = %g, want %g", phi, want)
	}

	p.EGeV = 0
	if _, err := OscillationPhase(p); err == nil {
		t.Error("expected error for non-positive energy")
	}
	p = DefaultParams()
	p.LKm = -1
	if _, err := OscillationPhase(p); err == nil {
		t.Error("expected error for negative baseline")
	}
}

func TestZeroEpsilonLeavesPhaseUnbiased(t *testing.T) {
	p := DefaultParams()
	bias, err := GeometricPhaseBias(p)
	if err != nil {
		t.Fatalf("GeometricPhaseBias failed: %v", err)
	}
	if bias != 0 {
		t.Errorf("bias = %g, want 0 for epsilon = 0", bias)
	}

	phi0, _ := OscillationPhase(p)
	phi, err := EffectivePhase(p)
	if err != nil {
		t.Fatalf("EffectivePhase failed: %v", err)
	}
	if phi != phi0 {
		t.Errorf("effective phase = %g, want standard %g", phi, phi0)
	}
}

func TestBiasScalesLinearly(t *testing.T) {
	p := DefaultParams()
	p.Epsilon = 1e-3
	phi0, _ := OscillationPhase(p)

	bias, err := GeometricPhaseBias(p)
	if err != nil {
		t.Fatalf("GeometricPhaseBias failed: %v", err)
	}
	want := p.SymmetryWeight * p.Epsilon * phi0
	if math.Abs(bias-want) > 1e-15 {
		t.Errorf("bias = %g, want %g", bias, want)
	}

	p.SymmetryWeight = 0
	bias, _ = GeometricPhaseBias(p)
	if bias != 0 {
		t.Errorf("zero symmetry weight should zero the bias, got %g", bias)
	}
}

func TestSurvivalProbability(t *testing.T) {
	p := DefaultParams()
	prob, err := SurvivalProbability(p)
	if err != nil {
		t.Fatalf("SurvivalProbability failed: %v", err)
	}
	if prob < 0 || prob > 1 {
		t.Errorf("survival probability %g out of [0, 1]", prob)
	}

	phi, _ := EffectivePhase(p)
	want := 1 - math.Pow(math.Sin(2*p.ThetaRad), 2)*math.Pow(math.Sin(phi), 2)
	if math.Abs(prob-want) > 1e-12 {
		t.Errorf("survival probability = %g, want %g", prob, want)
	}

	// No mixing means no disappearance at all.
	p.ThetaRad = 0
	prob, _ = SurvivalProbability(p)
	if math.Abs(prob-1) > 1e-15 {
		t.Errorf("survival with theta=0 = %g, want 1", prob)
	}
}
