package algebra

import (
	"math"
	"math/cmplx"
	"sort"
)

const (
	jacobiMaxSweeps = 64
	jacobiTol       = 1e-13
)

// HermitianEigenvalues computes the eigenvalues of a Hermitian matrix by
// the cyclic Jacobi method with complex Givens rotations. Only the
// Hermitian part of m is diagonalized, so small anti-Hermitian noise is
// tolerated. The eigenvalues are returned in ascending order.
func HermitianEigenvalues(m Matrix) []float64 {
	a := m.Hermitize()
	n := a.Dim

	scale := a.FrobeniusNorm()
	if scale == 0 {
		return make([]float64, n)
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		if offDiagonalNorm(a) <= jacobiTol*scale {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(a, p, q)
			}
		}
	}

	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i] = real(a.Data[i*n+i])
	}
	sort.Float64s(eigs)
	return eigs
}

func offDiagonalNorm(a Matrix) float64 {
	n := a.Dim
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := a.Data[i*n+j]
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return math.Sqrt(sum)
}

// rotate applies the unitary plane rotation that annihilates a[p][q],
// updating a in place as U† a U.
func rotate(a Matrix, p, q int) {
	n := a.Dim
	apq := a.Data[p*n+q]
	b := cmplx.Abs(apq)
	if b == 0 {
		return
	}

	app := real(a.Data[p*n+p])
	aqq := real(a.Data[q*n+q])
	phase := apq / complex(b, 0)
	theta := 0.5 * math.Atan2(2*b, app-aqq)
	c := complex(math.Cos(theta), 0)
	s := complex(math.Sin(theta), 0)

	// Column update: a <- a U with U[p][p]=c, U[p][q]=-s*phase,
	// U[q][p]=s*conj(phase), U[q][q]=c.
	for k := 0; k < n; k++ {
		akp := a.Data[k*n+p]
		akq := a.Data[k*n+q]
		a.Data[k*n+p] = akp*c + akq*s*cmplx.Conj(phase)
		a.Data[k*n+q] = -akp*s*phase + akq*c
	}
	// Row update: a <- U† a.
	for k := 0; k < n; k++ {
		apk := a.Data[p*n+k]
		aqk := a.Data[q*n+k]
		a.Data[p*n+k] = apk*c + aqk*s*phase
		a.Data[q*n+k] = -apk*s*cmplx.Conj(phase) + aqk*c
	}
	// The rotated pivot is real up to roundoff; drop the residue so the
	// next rotation sees a clean zero.
	a.Data[p*n+q] = complex(0, 0)
	a.Data[q*n+p] = complex(0, 0)
}
