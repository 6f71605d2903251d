// Package neutron models the neutron lifetime discrepancy as an SDCR
// geometric bias: bottle and beam experiments see different effective
// lifetimes without any change to the intrinsic decay constant.
package neutron

// Params governs the geometric bias model.
type Params struct {
	// TauIntrinsic is the SM-consistent baseline lifetime in seconds.
	TauIntrinsic float64
	// Epsilon is the SDCR geometric modulation strength.
	Epsilon float64
	// AlphaBottle weights the bias in the quasi-rest (bottle) regime.
	AlphaBottle float64
	// BetaBeam weights the bias in the kinematic (beam) regime.
	BetaBeam float64
}

// DefaultParams matches the reference exemplar.
func DefaultParams() Params {
	return Params{
		TauIntrinsic: 887.0,
		Epsilon:      1.0e-4,
		AlphaBottle:  1.0,
		BetaBeam:     0.9,
	}
}

// BottleLifetime is the effective lifetime seen by the bottle method;
// the quasi-rest regime carries a negative geometric bias.
func BottleLifetime(p Params) float64 {
	return p.TauIntrinsic * (1 - p.AlphaBottle*p.Epsilon)
}

// BeamLifetime is the effective lifetime seen by the beam method;
// forward momentum suppresses the bias, lengthening the apparent
// lifetime.
func BeamLifetime(p Params) float64 {
	return p.TauIntrinsic * (1 + p.BetaBeam*p.Epsilon)
}

// Discrepancy is τ_beam - τ_bottle.
func Discrepancy(p Params) float64 {
	return BeamLifetime(p) - BottleLifetime(p)
}
