package sampler

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

// Sampler drives one batch of independent Markov-chain walkers under a
// proposal Rule. Each Step is a single atomic transition: propose,
// accept/reject per walker, age bookkeeping, in-place commit, step-size
// update, telemetry. A failed step leaves the walker state at its
// pre-step values.
type Sampler struct {
	rule Rule
	st   *State
	opts Options
	rng  *rand.Rand

	tau       float64
	step      int // steps since last Restart (first-certain window)
	totalStep int // lifetime steps (telemetry x-axis)
	seq       int // position inside the thinned lazy sequence
}

// New builds a Sampler over the walkers in rs, evaluating the rule's
// model once to initialize amplitudes, signs, and forces. rs is deep
// copied; the caller's batch is never aliased.
func New(rule Rule, rs physics.Positions, opts ...Option) (*Sampler, error) {
	if rule == nil {
		return nil, ErrNilRule
	}
	if rs.Walkers() == 0 {
		return nil, ErrNoWalkers
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	s := &Sampler{
		rule: rule,
		st:   newState(rs),
		opts: o,
		rng:  rand.New(rand.NewSource(o.Seed)),
		tau:  o.Tau,
		seq:  -o.NDiscard,
	}
	if err := rule.Recompute(s.st, s.tau); err != nil {
		return nil, err
	}
	return s, nil
}

// Walkers returns the walker count W.
func (s *Sampler) Walkers() int { return s.st.Walkers() }

// Tau returns the current proposal step size.
func (s *Sampler) Tau() float64 { return s.tau }

// State exposes the walker state for inspection. The Sampler remains
// the exclusive owner; mutating the returned state is undefined.
func (s *Sampler) State() *State { return s.st }

// Step advances the chain by one transition and returns a snapshot of
// the post-step state. The transition, in order:
//
//  1. Draw a candidate via the rule's Propose and Acceptance.
//  2. Accept walker w when PAcc[w] > U(0,1).
//  3. Log-amplitude floor: with a threshold configured, a below-floor
//     candidate is rejected unless the walker is already below the floor
//     and the candidate improves on its current amplitude.
//  4. Max-age override: a walker at MaxAge is moved unconditionally.
//  5. First-certain override: the first NFirstCertain steps of a chain
//     lifetime accept everything.
//  6. Ages: accepted → 0, rejected → +1.
//  7. Commit accepted walkers in place; rejected walkers keep their
//     exact previous values.
//  8. Update τ from the batch acceptance ratio.
//
// An error from the acceptance evaluation (such as a
// *physics.DecompositionError) aborts before any commit, so the walker
// state stays consistent.
func (s *Sampler) Step() (Sample, error) {
	rs := s.rule.Propose(s.st, s.tau, s.rng)
	cand, err := s.rule.Acceptance(s.st, rs, s.tau)
	if err != nil {
		return Sample{}, err
	}
	w := s.st.Walkers()
	accepted := make([]bool, w)
	for i := range accepted {
		accepted[i] = cand.PAcc[i] > s.rng.Float64()
	}
	if th := s.opts.LogPsiThreshold; !math.IsInf(th, -1) {
		for i := range accepted {
			accepted[i] = (accepted[i] && cand.LogPsi[i] > th) ||
				(s.st.LogPsi[i] < th && cand.LogPsi[i] > s.st.LogPsi[i])
		}
	}
	if s.opts.MaxAge > 0 {
		for i := range accepted {
			if s.st.Age[i] >= s.opts.MaxAge {
				accepted[i] = true
			}
		}
	}
	if s.step < s.opts.NFirstCertain {
		for i := range accepted {
			accepted[i] = true
		}
	}
	nAcc := 0
	for i, ok := range accepted {
		if ok {
			s.st.Age[i] = 0
			nAcc++
		} else {
			s.st.Age[i]++
		}
	}
	acceptance := float64(nAcc) / float64(w)
	s.st.commit(cand, accepted)
	s.tau = AdjustTau(s.tau, acceptance, s.opts.TargetAcceptance)
	s.step++
	s.totalStep++
	if wr := s.opts.Writer; wr != nil {
		s.writeDiagnostics(wr, acceptance)
	}
	return s.snapshot(acceptance), nil
}

// Next is the lazy sample sequence: it advances the chain until the
// next yielded sample, executing (but not yielding) the first NDiscard
// steps and thereafter yielding one sample every NDecorrelate+1 steps.
// Restart rewinds the sequence, so burn-in discard re-applies after
// each epoch.
func (s *Sampler) Next() (Sample, error) {
	for {
		smp, err := s.Step()
		if err != nil {
			return Sample{}, err
		}
		i := s.seq
		s.seq++
		if i >= 0 && i%(s.opts.NDecorrelate+1) == 0 {
			return smp, nil
		}
	}
}

// Restart rewinds the chain bookkeeping without moving any walker: the
// step counter and lazy sequence reset, amplitudes, signs, and forces
// are recomputed from the current positions, and all ages drop to zero.
func (s *Sampler) Restart() error {
	s.step = 0
	s.seq = -s.opts.NDiscard
	if err := s.rule.Recompute(s.st, s.tau); err != nil {
		return err
	}
	s.st.resetAges()
	return nil
}

// PropagateAll applies one unconditional proposal move to every walker,
// ignoring acceptance, then restarts the chain bookkeeping. Used to
// decorrelate the batch before a fresh epoch.
func (s *Sampler) PropagateAll() error {
	s.st.Rs = s.rule.Propose(s.st, s.tau, s.rng)
	return s.Restart()
}

// snapshot deep-copies the post-step state into a Sample.
func (s *Sampler) snapshot(acceptance float64) Sample {
	return Sample{
		Rs:     s.st.Rs.Clone(),
		LogPsi: append([]float64(nil), s.st.LogPsi...),
		Sign:   append([]float64(nil), s.st.Sign...),
		Info: Info{
			Acceptance: acceptance,
			Age:        append([]int(nil), s.st.Age...),
			Tau:        s.tau,
		},
	}
}

// writeDiagnostics emits the per-step scalar series.
func (s *Sampler) writeDiagnostics(w telemetry.Writer, acceptance float64) {
	step := s.totalStep
	w.Scalar("sampling/log_psis/mean", step, stat.Mean(s.st.LogPsi, nil))
	w.Scalar("sampling/dists/mean", step, stat.Mean(physics.PairwiseSelfDistance(s.st.Rs), nil))
	w.Scalar("sampling/acceptance", step, acceptance)
	w.Scalar("sampling/tau", step, s.tau)
	maxAge, sqSum := 0, 0.0
	for _, a := range s.st.Age {
		if a > maxAge {
			maxAge = a
		}
		sqSum += float64(a) * float64(a)
	}
	w.Scalar("sampling/age/max", step, float64(maxAge))
	w.Scalar("sampling/age/rms", step, math.Sqrt(sqSum/float64(len(s.st.Age))))
	s.rule.WriteDiagnostics(w, s.st, step)
}
