package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/sampler"
)

// newTestChain builds a Metropolis chain over the He reference model.
func newTestChain(t *testing.T, walkers int, opts ...sampler.Option) (*sampler.Sampler, *physics.HydrogenLike) {
	t.Helper()
	sys, err := physics.FromName("He")
	require.NoError(t, err)
	wf := &physics.HydrogenLike{Sys: sys, Zeta: 2}
	rs, err := sampler.RandFromMeanField(sys, walkers, 1.0, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	s, err := sampler.New(&sampler.Metropolis{WF: wf}, rs, opts...)
	require.NoError(t, err)
	return s, wf
}

// scriptWF returns a scripted log-amplitude (same for every walker) per
// Eval call, holding the last value once the script runs out.
type scriptWF struct {
	vals []float64
	call int
}

func (s *scriptWF) Eval(rs physics.Positions) ([]float64, []float64) {
	v := s.vals[len(s.vals)-1]
	if s.call < len(s.vals) {
		v = s.vals[s.call]
	}
	s.call++
	logPsi := make([]float64, rs.Walkers())
	sign := make([]float64, rs.Walkers())
	for w := range logPsi {
		logPsi[w] = v
		sign[w] = 1
	}
	return logPsi, sign
}

// decayWF makes every successive evaluation drastically worse, so no
// proposal is ever accepted on its own merits.
type decayWF struct{ call int }

func (d *decayWF) Eval(rs physics.Positions) ([]float64, []float64) {
	v := -1000.0 * float64(d.call)
	d.call++
	logPsi := make([]float64, rs.Walkers())
	sign := make([]float64, rs.Walkers())
	for w := range logPsi {
		logPsi[w] = v
		sign[w] = 1
	}
	return logPsi, sign
}

// countingWF counts forward evaluations around an inner model.
type countingWF struct {
	inner physics.WaveFunction
	calls int
}

func (c *countingWF) Eval(rs physics.Positions) ([]float64, []float64) {
	c.calls++
	return c.inner.Eval(rs)
}

func TestNew_Errors(t *testing.T) {
	rs := physics.NewPositions(1, 1)
	_, err := sampler.New(nil, rs)
	assert.ErrorIs(t, err, sampler.ErrNilRule)

	_, err = sampler.New(&sampler.Metropolis{WF: &scriptWF{vals: []float64{0}}}, nil)
	assert.ErrorIs(t, err, sampler.ErrNoWalkers)

	_, err = sampler.New(&sampler.Metropolis{WF: &scriptWF{vals: []float64{0}}}, rs,
		sampler.WithTau(-1))
	assert.ErrorIs(t, err, sampler.ErrOptionViolation)

	_, err = sampler.New(&sampler.Metropolis{WF: &scriptWF{vals: []float64{0}}}, rs,
		sampler.WithTargetAcceptance(1.5))
	assert.ErrorIs(t, err, sampler.ErrOptionViolation)

	_, err = sampler.New(&sampler.Metropolis{WF: &scriptWF{vals: []float64{0}}}, rs,
		sampler.WithDiscard(-1))
	assert.ErrorIs(t, err, sampler.ErrOptionViolation)
}

// TestStep_RejectedWalkersUnchanged is the core commit invariant:
// rejected walkers keep position, amplitude, and sign bit for bit;
// accepted walkers carry the candidate's values.
func TestStep_RejectedWalkersUnchanged(t *testing.T) {
	s, wf := newTestChain(t, 64,
		sampler.WithNFirstCertain(0),
		sampler.WithTau(0.5),
		sampler.WithSeed(11),
	)
	for n := 0; n < 10; n++ {
		st := s.State()
		preRs := st.Rs.Clone()
		preLog := append([]float64(nil), st.LogPsi...)
		preSign := append([]float64(nil), st.Sign...)

		smp, err := s.Step()
		require.NoError(t, err)

		for w := 0; w < s.Walkers(); w++ {
			if smp.Info.Age[w] > 0 { // rejected this step
				assert.Equal(t, preRs[w], st.Rs[w], "rejected walker %d moved", w)
				assert.Equal(t, preLog[w], st.LogPsi[w])
				assert.Equal(t, preSign[w], st.Sign[w])
			} else { // accepted: state must match a fresh forward pass
				logPsi, _ := wf.Eval(physics.Positions{st.Rs[w]})
				assert.Equal(t, logPsi[0], st.LogPsi[w], "accepted walker %d amplitude stale", w)
			}
		}
	}
}

// TestStep_AgeInvariant: age resets to 0 iff accepted, else grows by
// exactly one.
func TestStep_AgeInvariant(t *testing.T) {
	s, _ := newTestChain(t, 32,
		sampler.WithNFirstCertain(0),
		sampler.WithSeed(3),
	)
	prev := append([]int(nil), s.State().Age...)
	for n := 0; n < 50; n++ {
		smp, err := s.Step()
		require.NoError(t, err)
		for w, age := range smp.Info.Age {
			if age != 0 {
				assert.Equal(t, prev[w]+1, age, "walker %d age must grow by exactly 1", w)
			}
		}
		prev = smp.Info.Age
	}
}

// TestStep_FirstCertain: the first NFirstCertain steps accept everything.
func TestStep_FirstCertain(t *testing.T) {
	s, _ := newTestChain(t, 32, sampler.WithNFirstCertain(3), sampler.WithSeed(5))
	for n := 0; n < 3; n++ {
		smp, err := s.Step()
		require.NoError(t, err)
		assert.Equal(t, 1.0, smp.Info.Acceptance, "step %d must be force-accepted", n)
	}
}

// TestStep_MaxAge: under a model that rejects every proposal, walkers
// are still moved once they hit the age ceiling.
func TestStep_MaxAge(t *testing.T) {
	rs := physics.NewPositions(8, 1)
	s, err := sampler.New(&sampler.Metropolis{WF: &decayWF{}}, rs,
		sampler.WithNFirstCertain(0),
		sampler.WithMaxAge(2),
		sampler.WithTargetAcceptance(0),
	)
	require.NoError(t, err)

	want := []float64{0, 0, 1, 0, 0, 1, 0, 0, 1}
	for n, acc := range want {
		smp, err := s.Step()
		require.NoError(t, err)
		assert.Equal(t, acc, smp.Info.Acceptance, "step %d", n)
		for _, age := range smp.Info.Age {
			assert.LessOrEqual(t, age, 2, "age must never exceed MaxAge")
		}
	}
}

// TestStep_LogPsiThreshold pins the floor-override boundary behavior:
// candidates below the floor are force-rejected, unless the walker is
// already below the floor and the candidate improves on it.
func TestStep_LogPsiThreshold(t *testing.T) {
	run := func(initial, candidate float64) float64 {
		rs := physics.NewPositions(50, 1)
		s, err := sampler.New(
			&sampler.Metropolis{WF: &scriptWF{vals: []float64{initial, candidate}}}, rs,
			sampler.WithNFirstCertain(0),
			sampler.WithLogPsiThreshold(-5),
			sampler.WithTargetAcceptance(0),
		)
		require.NoError(t, err)
		smp, err := s.Step()
		require.NoError(t, err)
		return smp.Info.Acceptance
	}

	// healthy walker, candidate dips below the floor: force-rejected
	// even though the bare ratio exp(−0.3) ≈ 0.74 would accept often
	assert.Equal(t, 0.0, run(-4.9, -5.05))

	// trapped walker below the floor, candidate improves: escapes
	assert.Equal(t, 1.0, run(-6.0, -5.5))

	// trapped walker, candidate even worse: stays put
	assert.Equal(t, 0.0, run(-6.0, -6.5))
}

// TestStep_TauFollowsController: the post-step tau obeys the controller
// law with the step's own acceptance ratio.
func TestStep_TauFollowsController(t *testing.T) {
	s, _ := newTestChain(t, 64,
		sampler.WithNFirstCertain(0),
		sampler.WithTau(0.3),
		sampler.WithSeed(13),
	)
	smp, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, sampler.AdjustTau(0.3, smp.Info.Acceptance, sampler.DefaultTargetAcceptance), s.Tau())
	assert.Equal(t, s.Tau(), smp.Info.Tau)
}

// TestStep_TauFixedWhenDisabled: zero target holds tau over many steps.
func TestStep_TauFixedWhenDisabled(t *testing.T) {
	s, _ := newTestChain(t, 16,
		sampler.WithTau(0.2),
		sampler.WithTargetAcceptance(0),
	)
	for n := 0; n < 20; n++ {
		_, err := s.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, 0.2, s.Tau())
}

// TestRestart zeroes ages and refreshes amplitudes without moving
// anyone.
func TestRestart(t *testing.T) {
	s, wf := newTestChain(t, 16, sampler.WithSeed(23))
	for n := 0; n < 12; n++ {
		_, err := s.Step()
		require.NoError(t, err)
	}
	pre := s.State().Rs.Clone()

	require.NoError(t, s.Restart())

	st := s.State()
	assert.Equal(t, pre, st.Rs, "restart must not move walkers")
	logPsi, _ := wf.Eval(st.Rs)
	assert.Equal(t, logPsi, st.LogPsi, "restart must recompute amplitudes in place")
	for _, age := range st.Age {
		assert.Zero(t, age)
	}
}

// TestPropagateAll moves every walker unconditionally and restarts the
// bookkeeping.
func TestPropagateAll(t *testing.T) {
	s, wf := newTestChain(t, 16, sampler.WithSeed(29))
	pre := s.State().Rs.Clone()

	require.NoError(t, s.PropagateAll())

	st := s.State()
	for w := range st.Rs {
		assert.NotEqual(t, pre[w], st.Rs[w], "walker %d must have moved", w)
		assert.Zero(t, st.Age[w])
	}
	logPsi, _ := wf.Eval(st.Rs)
	assert.Equal(t, logPsi, st.LogPsi)
}

// TestNext_DiscardAndThinning counts model evaluations: with
// NDiscard=10 the first yielded sample is internal step index 10, and
// NDecorrelate=2 spaces subsequent yields three steps apart.
func TestNext_DiscardAndThinning(t *testing.T) {
	sys, err := physics.FromName("He")
	require.NoError(t, err)
	wf := &countingWF{inner: &physics.HydrogenLike{Sys: sys, Zeta: 2}}
	rs, err := sampler.RandFromMeanField(sys, 8, 1.0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	s, err := sampler.New(&sampler.Metropolis{WF: wf}, rs,
		sampler.WithDiscard(10),
		sampler.WithDecorrelate(2),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, wf.calls, "construction runs one forward pass")

	_, err = s.Next()
	require.NoError(t, err)
	// 10 discarded steps + the yielded one, each a single evaluation
	assert.Equal(t, 1+11, wf.calls)

	_, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1+11+3, wf.calls, "thinning draws NDecorrelate+1 steps per sample")
}
