package lindblad

import "github.com/dfeen87/sdcr-core/internal/algebra"

// TimeSpan is the integration interval [T0, TF], TF > T0.
type TimeSpan struct {
	T0 float64
	TF float64
}

// Trajectory is the time-ordered result of one integration call. Times
// and States have equal length; every state has been post-processed
// according to the Options the call was made with.
type Trajectory struct {
	Times  []float64
	States []algebra.Matrix
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Options collects every integrator tunable with its default.
type Options struct {
	// Rates are the per-operator γ_k; nil means all 1.0.
	Rates []float64
	// Method names the stepper; "rk45" (Dormand-Prince 5(4)) is the
	// only registered method and the default.
	Method string
	RTol   float64
	ATol   float64
	// InitialStep is the first trial step; 0 picks (TF-T0)/1000.
	InitialStep float64
	// MaxStep caps the step size; 0 means uncapped.
	MaxStep float64
	// MaxSteps bounds the accepted-step count before the run fails.
	MaxSteps int

	EnforceHermiticity bool
	RenormalizeTrace   bool
}

// DefaultOptions mirrors the reference tolerances: rtol 1e-8, atol
// 1e-10, both safeguards on.
func DefaultOptions() Options {
	return Options{
		Method:             "rk45",
		RTol:               1e-8,
		ATol:               1e-10,
		MaxSteps:           500000,
		EnforceHermiticity: true,
		RenormalizeTrace:   true,
	}
}
