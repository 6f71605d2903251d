// Package recovery is the entry point domain code uses to run dynamics
// with explicit symmetry-selection control.
//
// The recovery principle is structural, not approximate: with a nil or
// disabled selector, [SolveWithRecovery] passes the operator set to the
// integrator untouched, so the baseline evolution is reproduced by
// construction. [Check] is the matching falsifiability test.
package recovery

import (
	"github.com/dfeen87/sdcr-core/internal/algebra"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
	"github.com/dfeen87/sdcr-core/internal/symmetry"
)

// NewSelector constructs a selector; a nil projector means the identity
// projector, so enabling it is still a no-op.
func NewSelector(p symmetry.Projector, enabled bool) *symmetry.Selector {
	if p == nil {
		p = symmetry.Identity{}
	}
	return &symmetry.Selector{Projector: p, Enabled: enabled}
}

// SolveWithRecovery integrates the master equation, filtering the
// Lindblad operators through sel when it is present and enabled.
func SolveWithRecovery(rho0, h algebra.Matrix, ops []algebra.Matrix, span lindblad.TimeSpan, tEval []float64, sel *symmetry.Selector, opts lindblad.Options) (*lindblad.Trajectory, error) {
	if sel == nil || !sel.Enabled {
		return lindblad.Solve(rho0, h, ops, span, tEval, opts)
	}
	filtered, err := sel.Apply(ops)
	if err != nil {
		return nil, err
	}
	return lindblad.Solve(rho0, h, filtered, span, tEval, opts)
}

// Check reports whether two trajectories agree: equal length and every
// corresponding pair of states equal within absolute tolerance tol
// (elementwise, no relative component).
func Check(a, b *lindblad.Trajectory, tol float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.States {
		if !a.States[i].Equal(b.States[i], tol) {
			return false
		}
	}
	return true
}
