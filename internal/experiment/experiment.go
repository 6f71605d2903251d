// Package experiment runs the standard three-variant comparison:
// baseline (no selector), SDCR (selector enabled) and recovery
// (selector constructed but disabled). The variants share no mutable
// state, so they run concurrently, one goroutine each.
package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/dfeen87/sdcr-core/internal/algebra"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
	"github.com/dfeen87/sdcr-core/internal/recovery"
	"github.com/dfeen87/sdcr-core/internal/symmetry"
)

// Variant identifies one arm of the comparison.
type Variant int

const (
	Baseline Variant = iota
	SDCR
	Recovery
)

func (v Variant) String() string {
	switch v {
	case Baseline:
		return "baseline"
	case SDCR:
		return "sdcr"
	case Recovery:
		return "recovery"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Variants lists the three arms in presentation order.
var Variants = []Variant{Baseline, SDCR, Recovery}

// Request describes one three-variant run. Projector configures the
// SDCR and recovery selectors; nil means the identity projector.
type Request struct {
	Rho0      algebra.Matrix
	H         algebra.Matrix
	Ops       []algebra.Matrix
	Span      lindblad.TimeSpan
	TEval     []float64
	Projector symmetry.Projector
	Opts      lindblad.Options
}

// Set holds the three trajectories of one comparison.
type Set struct {
	Baseline *lindblad.Trajectory
	SDCR     *lindblad.Trajectory
	Recovery *lindblad.Trajectory
}

// Get returns the trajectory for a variant.
func (s *Set) Get(v Variant) *lindblad.Trajectory {
	switch v {
	case Baseline:
		return s.Baseline
	case SDCR:
		return s.SDCR
	default:
		return s.Recovery
	}
}

// RunAll integrates the three variants concurrently and returns the
// first failure, if any. Cancelling ctx aborts before launch; already
// running integrations complete on their own.
func RunAll(ctx context.Context, req Request) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selectors := []*symmetry.Selector{
		Baseline: nil,
		SDCR:     recovery.NewSelector(req.Projector, true),
		Recovery: recovery.NewSelector(req.Projector, false),
	}

	trajs := make([]*lindblad.Trajectory, len(Variants))
	errs := make([]error, len(Variants))

	var wg sync.WaitGroup
	for _, v := range Variants {
		wg.Add(1)
		go func(v Variant) {
			defer wg.Done()
			trajs[v], errs[v] = recovery.SolveWithRecovery(
				req.Rho0, req.H, req.Ops, req.Span, req.TEval, selectors[v], req.Opts)
		}(v)
	}
	wg.Wait()

	for _, v := range Variants {
		if errs[v] != nil {
			return nil, fmt.Errorf("%s: %w", v, errs[v])
		}
	}
	return &Set{Baseline: trajs[Baseline], SDCR: trajs[SDCR], Recovery: trajs[Recovery]}, nil
}
