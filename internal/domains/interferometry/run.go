package interferometry

import (
	"context"
	"fmt"

	"github.com/dfeen87/sdcr-core/internal/experiment"
	"github.com/dfeen87/sdcr-core/internal/lindblad"
	"github.com/dfeen87/sdcr-core/internal/symmetry"
)

// Projector returns the σ_z-aligned symmetry projector the SDCR arm
// filters its dephasing channels through.
func Projector() (symmetry.Projector, error) {
	return symmetry.PauliZSymmetry(2)
}

// RunVariants integrates the baseline, SDCR and recovery evolutions of
// the interferometer over [0, tFinal] on a uniform grid of points. The
// SDCR arm filters the dephasing channels through the σ_z-aligned
// projector.
func RunVariants(ctx context.Context, p Params, tFinal float64, points int, opts lindblad.Options) ([]float64, *experiment.Set, error) {
	if points < 2 {
		return nil, nil, fmt.Errorf("interferometry: points must be >= 2; got %d", points)
	}
	h, ops, err := BuildModel(p)
	if err != nil {
		return nil, nil, err
	}
	projector, err := Projector()
	if err != nil {
		return nil, nil, err
	}

	tEval := make([]float64, points)
	for i := range tEval {
		tEval[i] = tFinal * float64(i) / float64(points-1)
	}

	set, err := experiment.RunAll(ctx, experiment.Request{
		Rho0:      InitialState(),
		H:         h,
		Ops:       ops,
		Span:      lindblad.TimeSpan{T0: 0, TF: tFinal},
		TEval:     tEval,
		Projector: projector,
		Opts:      opts,
	})
	if err != nil {
		return nil, nil, err
	}
	return tEval, set, nil
}
