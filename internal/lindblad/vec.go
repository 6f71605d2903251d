package lindblad

import "github.com/dfeen87/sdcr-core/internal/algebra"

// Column-stacking vectorization: element (i, j) maps to index j*dim+i,
// so unvec(vec(rho)) is exact.

func vec(rho algebra.Matrix) []complex128 {
	n := rho.Dim
	v := make([]complex128, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v[j*n+i] = rho.At(i, j)
		}
	}
	return v
}

func unvec(v []complex128, dim int) algebra.Matrix {
	m := algebra.Zeros(dim)
	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			m.Set(i, j, v[j*dim+i])
		}
	}
	return m
}

// The stepper works on real vectors; complex entries are stored as
// adjacent (re, im) pairs.

func packReal(v []complex128) []float64 {
	y := make([]float64, 2*len(v))
	for i, c := range v {
		y[2*i] = real(c)
		y[2*i+1] = imag(c)
	}
	return y
}

func unpackReal(y []float64) []complex128 {
	v := make([]complex128, len(y)/2)
	for i := range v {
		v[i] = complex(y[2*i], y[2*i+1])
	}
	return v
}
