package recovery

import (
	"math"
	"testing"

	"github.com/dfeen87/sdcr-core/internal/algebra"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
	"github.com/dfeen87/sdcr-core/internal/observables"
	"github.com/dfeen87/sdcr-core/internal/symmetry"
)

// interferometer sets up the standard two-level scenario: phase rotation
// under sigma_x with sigma_z dephasing, starting in the balanced
// superposition state.
func interferometer() (rho0, h algebra.Matrix, ops []algebra.Matrix) {
	rho0 = algebra.DensityFromKet([]complex128{
		complex(1/math.Sqrt2, 0),
		complex(1/math.Sqrt2, 0),
	})
	h = algebra.PauliX().Scale(0.5)
	ops = []algebra.Matrix{algebra.PauliZ().Scale(complex(math.Sqrt(0.3), 0))}
	return rho0, h, ops
}

func grid(tf float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = tf * float64(i) / float64(n-1)
	}
	return out
}

func TestDisabledSelectorMatchesBaseline(t *testing.T) {
	rho0, h, ops := interferometer()
	span := lindblad.TimeSpan{T0: 0, TF: 10}
	tEval := grid(10, 400)
	opts := lindblad.DefaultOptions()

	baseline, err := lindblad.Solve(rho0, h, ops, span, tEval, opts)
	if err != nil {
		t.Fatalf("baseline solve failed: %v", err)
	}

	proj, err := symmetry.PauliZSymmetry(2)
	if err != nil {
		t.Fatalf("PauliZSymmetry failed: %v", err)
	}
	recovered, err := SolveWithRecovery(rho0, h, ops, span, tEval, NewSelector(proj, false), opts)
	if err != nil {
		t.Fatalf("recovery solve failed: %v", err)
	}

	if !Check(baseline, recovered, 1e-8) {
		t.Error("disabled selector did not reproduce the baseline trajectory")
	}
}

func TestNilSelectorMatchesBaseline(t *testing.T) {
	rho0, h, ops := interferometer()
	span := lindblad.TimeSpan{T0: 0, TF: 5}
	tEval := grid(5, 100)
	opts := lindblad.DefaultOptions()

	baseline, err := lindblad.Solve(rho0, h, ops, span, tEval, opts)
	if err != nil {
		t.Fatalf("baseline solve failed: %v", err)
	}
	recovered, err := SolveWithRecovery(rho0, h, ops, span, tEval, nil, opts)
	if err != nil {
		t.Fatalf("recovery solve failed: %v", err)
	}
	if !Check(baseline, recovered, 0) {
		t.Error("nil selector did not reproduce the baseline trajectory")
	}
}

func TestSigmaZProjectorInvariantChannel(t *testing.T) {
	// The dephasing operator lies inside the {I, sigma_z} span, so the
	// enabled projector must leave the dynamics unchanged.
	rho0, h, ops := interferometer()
	span := lindblad.TimeSpan{T0: 0, TF: 10}
	tEval := grid(10, 200)
	opts := lindblad.DefaultOptions()

	baseline, err := lindblad.Solve(rho0, h, ops, span, tEval, opts)
	if err != nil {
		t.Fatalf("baseline solve failed: %v", err)
	}

	proj, _ := symmetry.PauliZSymmetry(2)
	projected, err := SolveWithRecovery(rho0, h, ops, span, tEval, NewSelector(proj, true), opts)
	if err != nil {
		t.Fatalf("projected solve failed: %v", err)
	}
	if !Check(baseline, projected, 1e-8) {
		t.Error("projection of an invariant channel changed the trajectory")
	}
}

func TestCoherenceDecayEnvelope(t *testing.T) {
	rho0, h, ops := interferometer()
	span := lindblad.TimeSpan{T0: 0, TF: 10}
	tEval := grid(10, 400)

	traj, err := SolveWithRecovery(rho0, h, ops, span, tEval, nil, lindblad.DefaultOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	coh, err := observables.TimeSeries(traj, observables.Coherence01)
	if err != nil {
		t.Fatalf("coherence series failed: %v", err)
	}
	if math.Abs(coh[0]-0.5) > 1e-9 {
		t.Errorf("initial coherence = %g, want 0.5", coh[0])
	}
	for i := 1; i < len(coh); i++ {
		if coh[i] > coh[i-1]+1e-9 {
			t.Fatalf("coherence increased at t=%g: %g -> %g", traj.Times[i], coh[i-1], coh[i])
		}
	}
	want := 0.5 * math.Exp(-2*0.3*10)
	if math.Abs(coh[len(coh)-1]-want) > 1e-5 {
		t.Errorf("final coherence = %g, want %g", coh[len(coh)-1], want)
	}
}

func TestCheckLengthMismatch(t *testing.T) {
	a := &lindblad.Trajectory{
		Times:  []float64{0, 1},
		States: []algebra.Matrix{algebra.Identity(2), algebra.Identity(2)},
	}
	b := &lindblad.Trajectory{
		Times:  []float64{0},
		States: []algebra.Matrix{algebra.Identity(2)},
	}
	if Check(a, b, 1) {
		t.Error("Check accepted trajectories of different length")
	}
}

func TestCheckTolerance(t *testing.T) {
	m := algebra.Identity(2)
	shifted := m.Clone()
	shifted.Set(0, 0, complex(1+1e-6, 0))

	a := &lindblad.Trajectory{Times: []float64{0}, States: []algebra.Matrix{m}}
	b := &lindblad.Trajectory{Times: []float64{0}, States: []algebra.Matrix{shifted}}

	if Check(a, b, 1e-8) {
		t.Error("Check accepted a deviation above tolerance")
	}
	if !Check(a, b, 1e-5) {
		t.Error("Check rejected a deviation below tolerance")
	}
}
