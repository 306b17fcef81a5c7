package sampler

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

// Metropolis is the vanilla Metropolis-Hastings proposal: every electron
// coordinate moves by independent Gaussian noise of standard deviation
// τ, and a move is accepted with probability |ψ'/ψ|² =
// exp(2·(log|ψ'| − log|ψ|)). The model evaluation is a pure forward
// pass; no gradients are needed.
type Metropolis struct {
	// WF is the wave function being sampled.
	WF physics.WaveFunction
}

// Propose implements Rule.
func (m *Metropolis) Propose(st *State, tau float64, rng *rand.Rand) physics.Positions {
	normal := distuv.Normal{Mu: 0, Sigma: tau, Src: rng}
	out := physics.NewPositions(st.Rs.Walkers(), st.Rs.Electrons())
	for w := range st.Rs {
		for i, r := range st.Rs[w] {
			out[w][i] = r.Add(physics.Vec3{normal.Rand(), normal.Rand(), normal.Rand()})
		}
	}
	return out
}

// Acceptance implements Rule.
func (m *Metropolis) Acceptance(st *State, rs physics.Positions, _ float64) (*Candidate, error) {
	logPsi, sign := m.WF.Eval(rs)
	pAcc := make([]float64, len(logPsi))
	for w := range pAcc {
		// may be 0 or +Inf; both only feed a Bernoulli draw
		pAcc[w] = math.Exp(2 * (logPsi[w] - st.LogPsi[w]))
	}
	return &Candidate{Rs: rs, LogPsi: logPsi, Sign: sign, PAcc: pAcc}, nil
}

// HasForce implements Rule.
func (m *Metropolis) HasForce() bool { return false }

// Recompute implements Rule.
func (m *Metropolis) Recompute(st *State, _ float64) error {
	st.LogPsi, st.Sign = m.WF.Eval(st.Rs)
	return nil
}

// WriteDiagnostics implements Rule; the Metropolis variant has no extra
// telemetry.
func (m *Metropolis) WriteDiagnostics(telemetry.Writer, *State, int) {}
