package sampler

import (
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

// Candidate is the ephemeral result of one proposal/acceptance
// evaluation: candidate positions, their wave-function values, the
// per-walker acceptance probability field, and (for force-carrying
// rules) the candidate forces.
//
// PAcc entries may legitimately be 0 or +Inf; they only ever feed a
// Bernoulli accept/reject draw, so the extremes are harmless downstream.
type Candidate struct {
	Rs     physics.Positions
	LogPsi []float64
	Sign   []float64
	PAcc   []float64
	Force  physics.Forces // nil unless the rule maintains forces
}

// Rule is the polymorphic proposal/acceptance strategy of a chain.
// The Sampler stays variant-agnostic: it drives whichever Rule it was
// constructed with through the same step state machine.
type Rule interface {
	// Propose produces candidate positions from the current state and
	// step size. It must not mutate st.
	Propose(st *State, tau float64, rng *rand.Rand) physics.Positions

	// Acceptance evaluates the model at rs and returns the candidate
	// with its acceptance-probability field. A failure (for example a
	// force decomposition error) aborts the in-flight step before any
	// state commit.
	Acceptance(st *State, rs physics.Positions, tau float64) (*Candidate, error)

	// HasForce reports whether the rule maintains State.Force.
	HasForce() bool

	// Recompute refreshes st.LogPsi, st.Sign (and st.Force, when
	// maintained) from st.Rs without moving any walker. Used at
	// construction and on Restart.
	Recompute(st *State, tau float64) error

	// WriteDiagnostics emits variant-specific telemetry; w is non-nil.
	WriteDiagnostics(w telemetry.Writer, st *State, step int)
}
