// Package lindblad integrates the GKSL (Lindblad) master equation
//
//	dρ/dt = -i[H, ρ] + Σ_k γ_k ( L_k ρ L_k† - ½{L_k† L_k, ρ} )
//
// for N x N complex density matrices.
//
// The right-hand side is built by [RHS]; [Solve] drives it through an
// adaptive Dormand-Prince 5(4) stepper over the flattened state and
// post-processes every stored matrix (Hermitian projection and trace
// renormalization, both on by default).
//
// Integration is deterministic for fixed inputs, tolerances and method:
// the same step sequence is taken on every call. A run that cannot
// complete the requested interval fails with [IntegrationError]; partial
// trajectories are never returned.
package lindblad
