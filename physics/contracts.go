package physics

import (
	"errors"
	"math"
)

// WaveFunction is the minimal model contract: a forward evaluation of
// the many-electron wave function over a batch of walkers, returned as
// (log|ψ|, sign ψ) per walker.
//
// Implementations must be pure with respect to rs: evaluation never
// mutates the positions it is handed.
type WaveFunction interface {
	Eval(rs Positions) (logPsi, sign []float64)
}

// Gradient extends WaveFunction with the gradient of log|ψ| per electron
// coordinate, required by the Langevin (drift-corrected) proposal.
// The gradient computation may fail with a *DecompositionError carrying
// the offending walker indices.
type Gradient interface {
	WaveFunction
	GradLog(rs Positions) (grad Forces, logPsi, sign []float64, err error)
}

// LocalEnergizer produces the local energy E_loc = (Hψ)/ψ of every
// walker. The sampling loop consumes it once equilibration is detected.
type LocalEnergizer interface {
	LocalEnergy(rs Positions) ([]float64, error)
}

// QuantumForce evaluates the drift force F = 2·∇log|ψ| at rs, together
// with the wave-function value. Decomposition failures are augmented
// with the offending positions before being returned.
func QuantumForce(rs Positions, wf Gradient) (Forces, []float64, []float64, error) {
	grad, logPsi, sign, err := wf.GradLog(rs)
	if err != nil {
		var dErr *DecompositionError
		if errors.As(err, &dErr) && dErr.Rs == nil {
			dErr.Rs = rs.Select(dErr.Walkers)
		}
		return nil, nil, nil, err
	}
	forces := NewPositions(rs.Walkers(), rs.Electrons())
	for w := range grad {
		for i := range grad[w] {
			forces[w][i] = grad[w][i].Scale(2)
		}
	}
	return forces, logPsi, sign, nil
}

// CleanForce regularizes quantum forces that diverge near nodal surfaces
// and nuclear cusps, so that the Langevin drift step τ·F stays bounded.
// Each electron's force is rescaled by the Umrigar factor
//
//	s = (−1 + √(1 + 2·τ·|F|²)) / (τ·|F|²)
//
// which tends to 1 for small forces and caps the drift length at
// √(2/τ)·τ for large ones. The system descriptor is accepted for parity
// with richer regularizers (nucleus-distance capping) and may be nil.
func CleanForce(forces Forces, rs Positions, sys *System, tau float64) Forces {
	_ = rs
	_ = sys
	out := forces.Clone()
	for w := range out {
		for i := range out[w] {
			f2 := out[w][i].Dot(out[w][i])
			if f2 == 0 {
				continue
			}
			s := (-1 + math.Sqrt(1+2*tau*f2)) / (tau * f2)
			out[w][i] = out[w][i].Scale(s)
		}
	}
	return out
}

// PairwiseSelfDistance returns, per walker, the mean distance over all
// unordered electron pairs. Walkers with fewer than two electrons get 0.
// The sampling loop tracks this scalar as its equilibration summary.
func PairwiseSelfDistance(rs Positions) []float64 {
	out := make([]float64, rs.Walkers())
	n := rs.Electrons()
	if n < 2 {
		return out
	}
	pairs := float64(n*(n-1)) / 2
	for w := range rs {
		sum := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				sum += rs[w][i].Sub(rs[w][j]).Norm()
			}
		}
		out[w] = sum / pairs
	}
	return out
}
