package sampler

import "github.com/katalvlaran/qmc/physics"

// State is the mutable per-chain walker state, owned exclusively by one
// Sampler and mutated in place on every step. All per-walker slices
// share the leading walker dimension and stay index-aligned across every
// mutation: Rs[w], LogPsi[w], Sign[w], Age[w] (and Force[w] for rules
// that maintain forces) always describe the same physical walker.
type State struct {
	// Rs holds the current walker positions (W×N×3).
	Rs physics.Positions
	// LogPsi and Sign carry the wave-function value per walker.
	LogPsi []float64
	Sign   []float64
	// Age[w] counts steps since walker w last accepted a move.
	Age []int
	// Force is the current drift force (Langevin only; nil otherwise).
	Force physics.Forces
}

// newState deep-copies rs into a fresh State with zeroed ages.
// Amplitudes, signs, and forces are filled in by the rule's Recompute.
func newState(rs physics.Positions) *State {
	w := rs.Walkers()
	return &State{
		Rs:     rs.Clone(),
		LogPsi: make([]float64, w),
		Sign:   make([]float64, w),
		Age:    make([]int, w),
	}
}

// Walkers returns the walker count W.
func (st *State) Walkers() int { return st.Rs.Walkers() }

// commit moves the accepted walkers' candidate fields into the state.
// Rejected walkers are untouched, preserving their previous values bit
// for bit.
func (st *State) commit(c *Candidate, accepted []bool) {
	for w, ok := range accepted {
		if !ok {
			continue
		}
		st.Rs.CopyWalker(w, c.Rs)
		st.LogPsi[w] = c.LogPsi[w]
		st.Sign[w] = c.Sign[w]
		if st.Force != nil {
			st.Force.CopyWalker(w, c.Force)
		}
	}
}

// resetAges zeroes every walker's age.
func (st *State) resetAges() {
	for w := range st.Age {
		st.Age[w] = 0
	}
}
