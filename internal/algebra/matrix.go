package algebra

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a dense N x N complex matrix stored row-major.
// The zero value is not usable; build matrices with the constructors.
type Matrix struct {
	Dim  int
	Data []complex128
}

// Zeros returns an n x n zero matrix.
func Zeros(n int) Matrix {
	return Matrix{Dim: n, Data: make([]complex128, n*n)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from row slices. All rows must have length
// equal to the row count.
func FromRows(rows [][]complex128) (Matrix, error) {
	n := len(rows)
	if n == 0 {
		return Matrix{}, &ShapeError{Name: "rows", Dim: 0, Want: 1}
	}
	m := Zeros(n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, &ShapeError{Name: fmt.Sprintf("rows[%d]", i), Dim: len(row), Want: n}
		}
		copy(m.Data[i*n:(i+1)*n], row)
	}
	return m, nil
}

func (m Matrix) At(i, j int) complex128     { return m.Data[i*m.Dim+j] }
func (m Matrix) Set(i, j int, v complex128) { m.Data[i*m.Dim+j] = v }

func (m Matrix) Clone() Matrix {
	c := Matrix{Dim: m.Dim, Data: make([]complex128, len(m.Data))}
	copy(c.Data, m.Data)
	return c
}

// Dagger returns the Hermitian conjugate (conjugate transpose).
func (m Matrix) Dagger() Matrix {
	n := m.Dim
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Data[j*n+i] = cmplx.Conj(m.Data[i*n+j])
		}
	}
	return out
}

func (m Matrix) Add(other Matrix) Matrix {
	out := m.Clone()
	for i, v := range other.Data {
		out.Data[i] += v
	}
	return out
}

func (m Matrix) Sub(other Matrix) Matrix {
	out := m.Clone()
	for i, v := range other.Data {
		out.Data[i] -= v
	}
	return out
}

func (m Matrix) Scale(factor complex128) Matrix {
	out := m.Clone()
	for i := range out.Data {
		out.Data[i] *= factor
	}
	return out
}

// Mul returns the matrix product m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	n := m.Dim
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.Data[i*n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out.Data[i*n+j] += a * other.Data[k*n+j]
			}
		}
	}
	return out
}

func (m Matrix) Trace() complex128 {
	var tr complex128
	for i := 0; i < m.Dim; i++ {
		tr += m.Data[i*m.Dim+i]
	}
	return tr
}

// HSInner is the Hilbert-Schmidt inner product Tr(m† other).
func (m Matrix) HSInner(other Matrix) complex128 {
	var sum complex128
	for i, v := range m.Data {
		sum += cmplx.Conj(v) * other.Data[i]
	}
	return sum
}

// FrobeniusNorm is sqrt(Tr(m† m)).
func (m Matrix) FrobeniusNorm() float64 {
	sum := 0.0
	for _, v := range m.Data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// Hermitize projects onto the Hermitian part (m + m†)/2.
func (m Matrix) Hermitize() Matrix {
	n := m.Dim
	out := Zeros(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Data[i*n+j] = 0.5 * (m.Data[i*n+j] + cmplx.Conj(m.Data[j*n+i]))
		}
	}
	return out
}

// Equal reports whether every element of m is within atol of the
// corresponding element of other. Dimensions must match; the comparison
// has no relative component.
func (m Matrix) Equal(other Matrix, atol float64) bool {
	if m.Dim != other.Dim {
		return false
	}
	for i, v := range m.Data {
		if cmplx.Abs(v-other.Data[i]) > atol {
			return false
		}
	}
	return true
}

// IsFinite reports whether every entry is free of NaN and Inf components.
func (m Matrix) IsFinite() bool {
	for _, v := range m.Data {
		if math.IsNaN(real(v)) || math.IsInf(real(v), 0) ||
			math.IsNaN(imag(v)) || math.IsInf(imag(v), 0) {
			return false
		}
	}
	return true
}

// Commutator returns [a, b] = ab - ba.
func Commutator(a, b Matrix) Matrix {
	return a.Mul(b).Sub(b.Mul(a))
}

// Anticommutator returns {a, b} = ab + ba.
func Anticommutator(a, b Matrix) Matrix {
	return a.Mul(b).Add(b.Mul(a))
}

// CheckSameDim returns a ShapeError when the two operators have
// different dimensions.
func CheckSameDim(nameA string, a Matrix, nameB string, b Matrix) error {
	if a.Dim != b.Dim {
		return &ShapeError{Name: nameA, Other: nameB, Dim: a.Dim, Want: b.Dim}
	}
	return nil
}
