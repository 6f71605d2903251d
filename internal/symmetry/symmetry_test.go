package symmetry

import (
	"errors"
	"testing"

	"github.com/dfeen87/sdcr-core/internal/algebra"
)

func TestIdentityProjectorNoOp(t *testing.T) {
	ops := []algebra.Matrix{algebra.PauliX(), algebra.PauliY(), algebra.PauliZ()}
	for _, op := range ops {
		out, err := Identity{}.Apply(op)
		if err != nil {
			t.Fatalf("identity apply failed: %v", err)
		}
		if !out.Equal(op, 0) {
			t.Error("identity projector changed its input")
		}
	}
}

func TestBasisProjectorEmptyBasis(t *testing.T) {
	_, err := NewBasisProjector(nil)
	if !errors.Is(err, ErrEmptyBasis) {
		t.Errorf("expected ErrEmptyBasis, got %v", err)
	}
}

func TestBasisProjectorZeroNormBasis(t *testing.T) {
	_, err := NewBasisProjector([]algebra.Matrix{algebra.Identity(2), algebra.Zeros(2)})
	if err == nil {
		t.Fatal("expected error for zero-norm basis operator")
	}
	var de *DegenerateBasisError
	if !errors.As(err, &de) {
		t.Fatalf("expected DegenerateBasisError, got %T", err)
	}
	if de.Index != 1 {
		t.Errorf("degenerate index = %d, want 1", de.Index)
	}
}

func TestBasisProjectorDimMismatch(t *testing.T) {
	_, err := NewBasisProjector([]algebra.Matrix{algebra.Identity(2), algebra.Identity(3)})
	var se *algebra.ShapeError
	if !errors.As(err, &se) {
		t.Errorf("expected ShapeError for mixed basis dims, got %v", err)
	}

	p, err := NewBasisProjector([]algebra.Matrix{algebra.Identity(2)})
	if err != nil {
		t.Fatalf("NewBasisProjector failed: %v", err)
	}
	_, err = p.Apply(algebra.Identity(3))
	if !errors.As(err, &se) {
		t.Errorf("expected ShapeError for mismatched operand, got %v", err)
	}
}

func TestBasisProjectorIdempotent(t *testing.T) {
	p, err := PauliZSymmetry(2)
	if err != nil {
		t.Fatalf("PauliZSymmetry failed: %v", err)
	}

	op, _ := algebra.FromRows([][]complex128{
		{1.5, 0.3 - 0.7i},
		{0.3 + 0.7i, -2},
	})
	once, err := p.Apply(op)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	twice, err := p.Apply(once)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if !twice.Equal(once, 1e-12) {
		t.Error("projector is not idempotent")
	}
}

func TestPauliZSymmetrySelectivity(t *testing.T) {
	p, err := PauliZSymmetry(2)
	if err != nil {
		t.Fatalf("PauliZSymmetry failed: %v", err)
	}

	// Purely off-diagonal content is annihilated.
	out, err := p.Apply(algebra.PauliX())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !out.Equal(algebra.Zeros(2), 1e-12) {
		t.Errorf("sigma_x should project to zero, got %v", out.Data)
	}

	// Diagonal operators pass through unchanged.
	diag, _ := algebra.FromRows([][]complex128{
		{0.7, 0},
		{0, -1.2},
	})
	out, err = p.Apply(diag)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !out.Equal(diag, 1e-12) {
		t.Errorf("diagonal operator should be invariant, got %v", out.Data)
	}
}

func TestPauliZSymmetryDimension(t *testing.T) {
	for _, dim := range []int{1, 3, 4} {
		if _, err := PauliZSymmetry(dim); err == nil {
			t.Errorf("expected DimensionError for dim=%d", dim)
		}
	}
}

func TestSelectorDisabled(t *testing.T) {
	p, _ := PauliZSymmetry(2)
	sel := Selector{Projector: p, Enabled: false}

	ops := []algebra.Matrix{algebra.PauliX(), algebra.PauliZ()}
	out, err := sel.Apply(ops)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(out) != len(ops) {
		t.Fatalf("expected %d operators, got %d", len(ops), len(out))
	}
	for i := range ops {
		if !out[i].Equal(ops[i], 0) {
			t.Errorf("disabled selector changed operator %d", i)
		}
	}
}

func TestSelectorEnabledPreservesOrder(t *testing.T) {
	p, _ := PauliZSymmetry(2)
	sel := Selector{Projector: p, Enabled: true}

	ops := []algebra.Matrix{algebra.PauliZ(), algebra.PauliX()}
	out, err := sel.Apply(ops)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !out[0].Equal(algebra.PauliZ(), 1e-12) {
		t.Error("sigma_z channel should survive in place")
	}
	if !out[1].Equal(algebra.Zeros(2), 1e-12) {
		t.Error("sigma_x channel should be annihilated in place")
	}
}

func TestSelectorDoesNotMutateInputs(t *testing.T) {
	p, _ := PauliZSymmetry(2)
	sel := Selector{Projector: p, Enabled: true}

	op := algebra.PauliX()
	original := op.Clone()
	if _, err := sel.Apply([]algebra.Matrix{op}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !op.Equal(original, 0) {
		t.Error("selector mutated its input operator")
	}
}
