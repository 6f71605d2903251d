// Package symmetry implements the symmetry-selection operators (Π_sym)
// that optionally filter Lindblad operator sets before integration.
//
// A [Projector] maps an operator to its symmetry-aligned component. Two
// variants are built in: [Identity] (the recovery limit, a pure no-op)
// and [BasisProjector] (projection onto the span of a Hilbert-Schmidt
// orthogonal operator basis). A [Selector] pairs a projector with an
// enabled flag fixed at construction; disabling it returns operators
// untouched.
package symmetry

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/dfeen87/sdcr-core/internal/algebra"
)

// ErrEmptyBasis is returned when a projector is built from no operators.
var ErrEmptyBasis = errors.New("symmetry: basis must contain at least one operator")

// DegenerateBasisError reports a basis operator with zero
// Hilbert-Schmidt norm, which cannot be normalized.
type DegenerateBasisError struct {
	Index int
}

func (e *DegenerateBasisError) Error() string {
	return fmt.Sprintf("symmetry: basis[%d] has zero norm", e.Index)
}

// Projector maps an operator to its symmetry-aligned component.
type Projector interface {
	Apply(op algebra.Matrix) (algebra.Matrix, error)
}

// Identity is the degenerate projector Π_sym = I. It returns its input
// unchanged, making a disabled selector and an identity-projected one
// indistinguishable.
type Identity struct{}

func (Identity) Apply(op algebra.Matrix) (algebra.Matrix, error) { return op, nil }

// BasisProjector projects operators onto the span of an operator basis
// under the Hilbert-Schmidt inner product <A,B> = Tr(A†B).
type BasisProjector struct {
	basis []algebra.Matrix // normalized copies
}

// NewBasisProjector normalizes each basis element by its own norm. The
// basis operators are assumed pairwise orthogonal; they must share one
// dimension and none may have zero norm.
func NewBasisProjector(basis []algebra.Matrix) (*BasisProjector, error) {
	if len(basis) == 0 {
		return nil, ErrEmptyBasis
	}
	normed := make([]algebra.Matrix, len(basis))
	for i, b := range basis {
		if err := algebra.CheckSameDim(fmt.Sprintf("basis[%d]", i), b, "basis[0]", basis[0]); err != nil {
			return nil, err
		}
		norm := cmplx.Abs(b.HSInner(b))
		if norm == 0 {
			return nil, &DegenerateBasisError{Index: i}
		}
		normed[i] = b.Scale(complex(1/math.Sqrt(norm), 0))
	}
	return &BasisProjector{basis: normed}, nil
}

// Apply computes Π_sym(op) = Σ_k <B_k, op> B_k.
func (p *BasisProjector) Apply(op algebra.Matrix) (algebra.Matrix, error) {
	if err := algebra.CheckSameDim("op", op, "basis[0]", p.basis[0]); err != nil {
		return algebra.Matrix{}, err
	}
	out := algebra.Zeros(op.Dim)
	for _, b := range p.basis {
		coeff := b.HSInner(op)
		out = out.Add(b.Scale(coeff))
	}
	return out, nil
}

// PauliZSymmetry builds the {I, σ_z} basis projector for a two-level
// system: it keeps the component of an operator diagonal in the
// computational basis and annihilates purely off-diagonal content.
func PauliZSymmetry(dim int) (*BasisProjector, error) {
	if dim != 2 {
		return nil, &algebra.DimensionError{Op: "PauliZSymmetry", Dim: dim, Want: 2}
	}
	return NewBasisProjector([]algebra.Matrix{algebra.Identity(2), algebra.PauliZ()})
}

// Selector pairs a projector with an enabled flag. Both are fixed at
// construction; experimental variants are realized by constructing
// distinct selectors, never by mutating one.
type Selector struct {
	Projector Projector
	Enabled   bool
}

// Apply returns a fresh slice holding each operator's projection, or
// the operators unchanged when the selector is disabled. Input order is
// preserved and the inputs are never mutated.
func (s Selector) Apply(ops []algebra.Matrix) ([]algebra.Matrix, error) {
	out := make([]algebra.Matrix, len(ops))
	if !s.Enabled {
		copy(out, ops)
		return out, nil
	}
	p := s.Projector
	if p == nil {
		p = Identity{}
	}
	for i, op := range ops {
		filtered, err := p.Apply(op)
		if err != nil {
			return nil, err
		}
		out[i] = filtered
	}
	return out, nil
}
