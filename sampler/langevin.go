package sampler

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

// Langevin is the drift-corrected proposal: walkers diffuse under the
// quantum force F = 2·∇log|ψ|, moving by F·τ plus Gaussian noise of
// standard deviation √τ. Detailed balance under the asymmetric proposal
// is restored by the Green's-function ratio
//
//	log G = Σ (F + F') · ((r − r') + τ/2·(F − F'))
//
// summed over electron and spatial axes, so that
// P_acc = exp(log G + 2·(log|ψ'| − log|ψ|)).
//
// Forces are regularized through physics.CleanForce before use, taming
// the singularities near nodal surfaces and nuclear cusps.
type Langevin struct {
	// WF is the wave function; it must expose gradients.
	WF physics.Gradient
	// Sys is the nuclear frame handed to the force regularizer.
	Sys *physics.System
}

// Propose implements Rule.
func (l *Langevin) Propose(st *State, tau float64, rng *rand.Rand) physics.Positions {
	normal := distuv.Normal{Mu: 0, Sigma: math.Sqrt(tau), Src: rng}
	out := physics.NewPositions(st.Rs.Walkers(), st.Rs.Electrons())
	for w := range st.Rs {
		for i, r := range st.Rs[w] {
			drift := st.Force[w][i].Scale(tau)
			noise := physics.Vec3{normal.Rand(), normal.Rand(), normal.Rand()}
			out[w][i] = r.Add(drift).Add(noise)
		}
	}
	return out
}

// Acceptance implements Rule. A decomposition failure inside the force
// computation aborts the step; the error already carries the offending
// walker indices and positions.
func (l *Langevin) Acceptance(st *State, rs physics.Positions, tau float64) (*Candidate, error) {
	forces, logPsi, sign, err := l.qforce(rs, tau)
	if err != nil {
		return nil, err
	}
	pAcc := make([]float64, len(logPsi))
	for w := range pAcc {
		logG := 0.0
		for i := range rs[w] {
			fSum := st.Force[w][i].Add(forces[w][i])
			back := st.Rs[w][i].Sub(rs[w][i])
			fDiff := st.Force[w][i].Sub(forces[w][i]).Scale(tau / 2)
			logG += fSum.Dot(back.Add(fDiff))
		}
		// may be 0 or +Inf; both only feed a Bernoulli draw
		pAcc[w] = math.Exp(logG + 2*(logPsi[w]-st.LogPsi[w]))
	}
	return &Candidate{Rs: rs, LogPsi: logPsi, Sign: sign, PAcc: pAcc, Force: forces}, nil
}

// qforce evaluates the regularized quantum force and wave function at rs.
func (l *Langevin) qforce(rs physics.Positions, tau float64) (physics.Forces, []float64, []float64, error) {
	forces, logPsi, sign, err := physics.QuantumForce(rs, l.WF)
	if err != nil {
		return nil, nil, nil, err
	}
	return physics.CleanForce(forces, rs, l.Sys, tau), logPsi, sign, nil
}

// HasForce implements Rule.
func (l *Langevin) HasForce() bool { return true }

// Recompute implements Rule.
func (l *Langevin) Recompute(st *State, tau float64) error {
	forces, logPsi, sign, err := l.qforce(st.Rs, tau)
	if err != nil {
		return err
	}
	st.Force, st.LogPsi, st.Sign = forces, logPsi, sign
	return nil
}

// WriteDiagnostics implements Rule: reports the mean per-electron force
// magnitude.
func (l *Langevin) WriteDiagnostics(w telemetry.Writer, st *State, step int) {
	sum, n := 0.0, 0
	for wi := range st.Force {
		for _, f := range st.Force[wi] {
			sum += f.Norm()
			n++
		}
	}
	if n > 0 {
		w.Scalar("sampling/forces", step, sum/float64(n))
	}
}
