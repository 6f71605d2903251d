package algebra

import "fmt"

// ShapeError reports a malformed operator shape or a dimension mismatch
// between two operators.
type ShapeError struct {
	Name  string
	Other string
	Dim   int
	Want  int
}

func (e *ShapeError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("algebra: %s and %s must have the same dimension; got %d vs %d",
			e.Name, e.Other, e.Dim, e.Want)
	}
	return fmt.Sprintf("algebra: %s must be a square matrix of dimension >= %d; got %d",
		e.Name, e.Want, e.Dim)
}

// DimensionError reports a dimension-restricted operation invoked on an
// operator of unsupported dimension.
type DimensionError struct {
	Op   string
	Dim  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("algebra: %s is defined only for dimension %d; got %d", e.Op, e.Want, e.Dim)
}
