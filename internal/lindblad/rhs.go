package lindblad

import (
	"fmt"

	"github.com/dfeen87/sdcr-core/internal/algebra"
)

// RHS evaluates the Lindblad generator at time t.
//
// The time argument is unused for time-independent operators but kept so
// the signature matches what the stepper drives. If rates is nil every
// channel gets rate 1.0; otherwise its length must equal len(ops) and
// every entry must be nonnegative.
func RHS(t float64, rho, h algebra.Matrix, ops []algebra.Matrix, rates []float64) (algebra.Matrix, error) {
	_ = t

	if err := algebra.CheckSameDim("rho", rho, "H", h); err != nil {
		return algebra.Matrix{}, err
	}
	if rates != nil && len(rates) != len(ops) {
		return algebra.Matrix{}, &RateCountError{Rates: len(rates), Ops: len(ops)}
	}

	// Unitary part: -i[H, rho].
	drho := algebra.Commutator(h, rho).Scale(-1i)

	for idx, op := range ops {
		if err := algebra.CheckSameDim("rho", rho, fmt.Sprintf("L_ops[%d]", idx), op); err != nil {
			return algebra.Matrix{}, err
		}
		gamma := 1.0
		if rates != nil {
			gamma = rates[idx]
		}
		if gamma < 0 {
			return algebra.Matrix{}, &RateSignError{Index: idx, Rate: gamma}
		}
		if gamma == 0 {
			continue
		}

		ld := op.Dagger()
		jump := op.Mul(rho).Mul(ld)
		damp := algebra.Anticommutator(ld.Mul(op), rho).Scale(0.5)
		drho = drho.Add(jump.Sub(damp).Scale(complex(gamma, 0)))
	}

	return drho, nil
}
