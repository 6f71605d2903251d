// Package validate provides opt-in pre-flight checks for states handed
// to the integrator. The core never calls these itself; a caller that
// wants hardened inputs runs them at the boundary and skips integration
// on failure.
package validate

import (
	"fmt"
	"math/cmplx"

	"github.com/dfeen87/sdcr-core/internal/algebra"
)

const (
	// HermiticityTol bounds |ρ - ρ†| elementwise.
	HermiticityTol = 1e-10
	// TraceTol bounds |Tr(ρ) - 1|.
	TraceTol = 1e-10
	// EigenTol is the allowed negative slack on eigenvalues before a
	// state is rejected as not positive semidefinite.
	EigenTol = 1e-10
)

// DensityMatrix checks that rho is a physically meaningful state:
// finite entries, Hermitian, unit trace and positive semidefinite (by
// eigenvalue check). It returns a descriptive error for the first
// violated property.
func DensityMatrix(rho algebra.Matrix) error {
	if rho.Dim == 0 {
		return fmt.Errorf("validate: density matrix is empty")
	}
	if !rho.IsFinite() {
		return fmt.Errorf("validate: density matrix contains NaN or Inf entries")
	}
	if !rho.Equal(rho.Dagger(), HermiticityTol) {
		return fmt.Errorf("validate: density matrix is not Hermitian within %g", HermiticityTol)
	}
	tr := rho.Trace()
	if cmplx.Abs(tr-1) > TraceTol {
		return fmt.Errorf("validate: trace must be 1; got %g", tr)
	}
	for _, ev := range algebra.HermitianEigenvalues(rho) {
		if ev < -EigenTol {
			return fmt.Errorf("validate: density matrix is not positive semidefinite (eigenvalue %g)", ev)
		}
	}
	return nil
}
