package lindblad

import (
	"fmt"
	"math"

	"github.com/dfeen87/sdcr-core/internal/algebra"
)

// Dormand-Prince 5(4) coefficients.
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const (
	stepSafety   = 0.9
	stepMinScale = 0.2
	stepMaxScale = 10.0
)

type rhsFunc func(t float64, y []float64) ([]float64, error)

// Solve integrates the master equation for rho0 over span.
//
// When tEval is nil the trajectory holds the accepted step points the
// stepper actually took; otherwise it holds exactly the requested grid,
// filled by dense (cubic Hermite) interpolation between accepted steps.
// Every tEval entry must lie inside span in nondecreasing order.
func Solve(rho0, h algebra.Matrix, ops []algebra.Matrix, span TimeSpan, tEval []float64, opts Options) (*Trajectory, error) {
	if err := algebra.CheckSameDim("rho0", rho0, "H", h); err != nil {
		return nil, err
	}
	switch opts.Method {
	case "", "rk45":
	default:
		return nil, &MethodError{Method: opts.Method}
	}
	if !(span.TF > span.T0) {
		return nil, &SpanError{Message: fmt.Sprintf("t_span must satisfy tf > t0; got (%g, %g)", span.T0, span.TF)}
	}
	for i, te := range tEval {
		if te < span.T0 || te > span.TF {
			return nil, &SpanError{Message: fmt.Sprintf("t_eval[%d]=%g outside t_span (%g, %g)", i, te, span.T0, span.TF)}
		}
		if i > 0 && te < tEval[i-1] {
			return nil, &SpanError{Message: fmt.Sprintf("t_eval must be nondecreasing; t_eval[%d]=%g < t_eval[%d]=%g", i, te, i-1, tEval[i-1])}
		}
	}
	if err := checkRates(ops, opts.Rates); err != nil {
		return nil, err
	}

	dim := rho0.Dim
	f := func(t float64, y []float64) ([]float64, error) {
		drho, err := RHS(t, unvec(unpackReal(y), dim), h, ops, opts.Rates)
		if err != nil {
			return nil, err
		}
		return packReal(vec(drho)), nil
	}

	times, vectors, err := integrate(f, packReal(vec(rho0)), span, tEval, opts)
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{
		Times:  times,
		States: make([]algebra.Matrix, len(vectors)),
	}
	for i, y := range vectors {
		rho := unvec(unpackReal(y), dim)
		if opts.EnforceHermiticity {
			rho = rho.Hermitize()
		}
		if opts.RenormalizeTrace {
			tr := rho.Trace()
			if tr == 0 {
				return nil, &RenormalizationError{Time: times[i], Index: i}
			}
			rho = rho.Scale(1 / tr)
		}
		traj.States[i] = rho
	}
	return traj, nil
}

func checkRates(ops []algebra.Matrix, rates []float64) error {
	if rates == nil {
		return nil
	}
	if len(rates) != len(ops) {
		return &RateCountError{Rates: len(rates), Ops: len(ops)}
	}
	for i, g := range rates {
		if g < 0 {
			return &RateSignError{Index: i, Rate: g}
		}
	}
	return nil
}

// integrate runs the adaptive stepper, emitting either the accepted step
// points (tEval nil) or the interpolated grid.
func integrate(f rhsFunc, y0 []float64, span TimeSpan, tEval []float64, opts Options) ([]float64, [][]float64, error) {
	n := len(y0)
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultOptions().MaxSteps
	}
	dt := opts.InitialStep
	if dt <= 0 {
		dt = (span.TF - span.T0) / 1000
	}
	if opts.MaxStep > 0 && dt > opts.MaxStep {
		dt = opts.MaxStep
	}
	minStep := 1e-14 * math.Max(1, math.Abs(span.TF-span.T0))
	rtol := opts.RTol
	if rtol <= 0 {
		rtol = DefaultOptions().RTol
	}
	atol := opts.ATol
	if atol <= 0 {
		atol = DefaultOptions().ATol
	}

	var outTimes []float64
	var outVecs [][]float64
	evalIdx := 0

	emitPoint := func(t float64, y []float64) {
		outTimes = append(outTimes, t)
		outVecs = append(outVecs, append([]float64(nil), y...))
	}

	t := span.T0
	y := append([]float64(nil), y0...)

	if tEval == nil {
		emitPoint(t, y)
	} else {
		for evalIdx < len(tEval) && tEval[evalIdx] <= span.T0 {
			emitPoint(tEval[evalIdx], y)
			evalIdx++
		}
	}

	k1, err := f(t, y)
	if err != nil {
		return nil, nil, err
	}

	steps := 0
	for t < span.TF {
		if steps >= maxSteps {
			return nil, nil, &IntegrationError{Time: t, Steps: steps, Message: fmt.Sprintf("exceeded maximum step count %d", maxSteps)}
		}
		if dt < minStep {
			return nil, nil, &IntegrationError{Time: t, Steps: steps, Message: fmt.Sprintf("step size underflow (dt=%g)", dt)}
		}

		last := false
		if dt >= span.TF-t {
			dt = span.TF - t
			last = true
		}

		yNew, k7, errNorm, err := attemptStep(f, t, y, k1, dt, rtol, atol)
		if err != nil {
			return nil, nil, err
		}

		if errNorm <= 1 {
			if !isFiniteVec(yNew) {
				return nil, nil, &IntegrationError{Time: t, Steps: steps, Message: "state contains NaN or Inf"}
			}
			tNew := t + dt
			if last {
				tNew = span.TF
			}
			if tEval == nil {
				emitPoint(tNew, yNew)
			} else {
				for evalIdx < len(tEval) && tEval[evalIdx] <= tNew {
					yi := hermiteInterp(t, y, k1, tNew, yNew, k7, tEval[evalIdx], n)
					emitPoint(tEval[evalIdx], yi)
					evalIdx++
				}
			}
			t = tNew
			y = yNew
			k1 = k7 // FSAL
			steps++
		}

		dt = nextStep(dt, errNorm)
		if opts.MaxStep > 0 && dt > opts.MaxStep {
			dt = opts.MaxStep
		}
	}

	if tEval != nil && evalIdx < len(tEval) {
		// Remaining grid points can only be tf itself, missed by
		// floating-point comparison; emit the final state for them.
		for ; evalIdx < len(tEval); evalIdx++ {
			emitPoint(tEval[evalIdx], y)
		}
	}

	return outTimes, outVecs, nil
}

// attemptStep evaluates one Dormand-Prince trial step and its scaled
// error norm (accept when <= 1).
func attemptStep(f rhsFunc, t float64, y, k1 []float64, dt, rtol, atol float64) ([]float64, []float64, float64, error) {
	n := len(y)

	stage := make([]float64, n)
	for i := 0; i < n; i++ {
		stage[i] = y[i] + dt*b21*k1[i]
	}
	k2, err := f(t+a2*dt, stage)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3, err := f(t+a3*dt, stage)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4, err := f(t+a4*dt, stage)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5, err := f(t+a5*dt, stage)
	if err != nil {
		return nil, nil, 0, err
	}

	for i := 0; i < n; i++ {
		stage[i] = y[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6, err := f(t+dt, stage)
	if err != nil {
		return nil, nil, 0, err
	}

	yNew := make([]float64, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}
	k7, err := f(t+dt, yNew)
	if err != nil {
		return nil, nil, 0, err
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		sc := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		r := errEst / sc
		sum += r * r
	}
	errNorm := math.Sqrt(sum / float64(n))

	return yNew, k7, errNorm, nil
}

func isFiniteVec(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// hermiteInterp evaluates the cubic Hermite interpolant through
// (t0, y0, f0) and (t1, y1, f1) at tq.
func hermiteInterp(t0 float64, y0, f0 []float64, t1 float64, y1, f1 []float64, tq float64, n int) []float64 {
	h := t1 - t0
	s := (tq - t0) / h
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = h00*y0[i] + h10*h*f0[i] + h01*y1[i] + h11*h*f1[i]
	}
	return out
}

func nextStep(dt, errNorm float64) float64 {
	if errNorm > 1 {
		return dt * math.Max(stepMinScale, stepSafety*math.Pow(errNorm, -0.25))
	}
	if errNorm > 0 {
		return dt * math.Min(stepMaxScale, stepSafety*math.Pow(errNorm, -0.2))
	}
	return dt * stepMaxScale
}
