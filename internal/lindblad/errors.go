package lindblad

import "fmt"

// RateCountError reports a rates slice whose length does not match the
// operator count.
type RateCountError struct {
	Rates int
	Ops   int
}

func (e *RateCountError) Error() string {
	return fmt.Sprintf("lindblad: rates length must match L_ops length; got %d vs %d", e.Rates, e.Ops)
}

// RateSignError reports a negative Lindblad rate.
type RateSignError struct {
	Index int
	Rate  float64
}

func (e *RateSignError) Error() string {
	return fmt.Sprintf("lindblad: rates[%d] must be nonnegative; got %g", e.Index, e.Rate)
}

// IntegrationError reports a solver that failed to complete the
// requested interval. Message carries the stepper's diagnostic.
type IntegrationError struct {
	Time    float64
	Steps   int
	Message string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("lindblad: integration failed at t=%.6g after %d steps: %s", e.Time, e.Steps, e.Message)
}

// RenormalizationError reports a stored state whose trace is numerically
// zero, which trace renormalization cannot divide by.
type RenormalizationError struct {
	Time  float64
	Index int
}

func (e *RenormalizationError) Error() string {
	return fmt.Sprintf("lindblad: trace became zero at output %d (t=%.6g); cannot renormalize", e.Index, e.Time)
}

// MethodError reports a request for an unregistered stepper.
type MethodError struct {
	Method string
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("lindblad: unknown method %q (registered: rk45)", e.Method)
}

// SpanError reports an invalid integration interval or evaluation grid.
type SpanError struct {
	Message string
}

func (e *SpanError) Error() string {
	return "lindblad: " + e.Message
}
