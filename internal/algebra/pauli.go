package algebra

import "math/cmplx"

// PauliX returns the 2x2 Pauli X matrix.
func PauliX() Matrix {
	return Matrix{Dim: 2, Data: []complex128{0, 1, 1, 0}}
}

// PauliY returns the 2x2 Pauli Y matrix.
func PauliY() Matrix {
	return Matrix{Dim: 2, Data: []complex128{0, -1i, 1i, 0}}
}

// PauliZ returns the 2x2 Pauli Z matrix.
func PauliZ() Matrix {
	return Matrix{Dim: 2, Data: []complex128{1, 0, 0, -1}}
}

// DensityFromKet returns the projector |psi><psi| onto a state vector.
// The vector is not normalized first; callers pass unit kets.
func DensityFromKet(psi []complex128) Matrix {
	n := len(psi)
	rho := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rho.Data[i*n+j] = psi[i] * cmplx.Conj(psi[j])
		}
	}
	return rho
}
