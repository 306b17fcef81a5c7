package evaluate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/qmc/estimator"
	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/sampler"
)

// Stream is the lazy (step, energy-estimate-or-nil, samples-or-nil)
// sequence produced by SampleWF. Single-consumer: it drives the
// sampler's shared walker state.
type Stream struct {
	wf    physics.LocalEnergizer
	s     *sampler.Sampler
	opts  Options
	det   *estimator.Detector
	acc   *estimator.Accumulator
	accum bool

	step    int // index of the next consumed sample
	steps   int // total samples to consume
	bufRs   physics.Positions
	pending []Result
}

// SampleWF samples the chain for the given number of (thinned) steps
// and accumulates an energy estimate. The returned stream yields the
// one-time equilibration event and every block commit; it ends with
// ErrDone once steps samples have been consumed.
func SampleWF(wf physics.LocalEnergizer, s *sampler.Sampler, steps int, opts ...Option) (*Stream, error) {
	if wf == nil {
		return nil, ErrNilEnergizer
	}
	if s == nil {
		return nil, ErrNilSampler
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	det, err := estimator.NewDetector(o.BlockSize)
	if err != nil {
		return nil, err
	}
	acc, err := estimator.NewAccumulator(o.BlockSize)
	if err != nil {
		return nil, err
	}
	return &Stream{
		wf:    wf,
		s:     s,
		opts:  o,
		det:   det,
		acc:   acc,
		accum: !o.Equilibrate,
		steps: steps,
	}, nil
}

// Next returns the next event, or ErrDone when the run is over.
// Sampling errors (for example a *physics.DecompositionError out of a
// Langevin force evaluation) are passed through fatally.
func (st *Stream) Next() (Result, error) {
	for {
		if len(st.pending) > 0 {
			r := st.pending[0]
			st.pending = st.pending[1:]
			return r, nil
		}
		if st.step >= st.steps {
			return Result{}, ErrDone
		}
		if err := st.advance(); err != nil {
			return Result{}, err
		}
	}
}

// advance consumes one sample and queues whatever events it produced.
// A single step can produce two: the equilibration transition also
// contributes the first accumulated energy sample, which may itself
// commit a block.
func (st *Stream) advance() error {
	smp, err := st.s.Next()
	if err != nil {
		return err
	}
	step := st.step
	st.step++

	dist := stat.Mean(physics.PairwiseSelfDistance(smp.Rs), nil)
	if st.det.Record(dist) && !st.accum {
		st.accum = true
		st.pending = append(st.pending, Result{Step: step})
	}

	var es []float64
	if st.accum {
		if es, err = st.wf.LocalEnergy(smp.Rs); err != nil {
			return err
		}
		st.bufRs = append(st.bufRs, smp.Rs...)
		if _, committed := st.acc.Add(stat.Mean(es, nil)); committed {
			est, err := st.acc.Estimate()
			if err != nil {
				return err
			}
			st.pending = append(st.pending, Result{Step: step, Energy: &est, Samples: st.bufRs})
			st.bufRs = nil
		}
	}

	if w := st.opts.Writer; w != nil {
		w.Scalar("age/mean", step, meanInt(smp.Info.Age))
		w.Scalar("age/max", step, maxInt(smp.Info.Age))
		w.Scalar("psi/mean", step, meanExp(smp.LogPsi))
		w.Scalar("r/norm/mean", step, meanNorm(smp.Rs))
		w.Scalar("r/dist/mean", step, dist)
		if es != nil {
			w.Scalar("E_loc/mean", step, stat.Mean(es, nil))
			w.Scalar("E_loc/var", step, stat.Variance(es, nil))
			mn, mx := floatsMinMax(es)
			w.Scalar("E_loc/min", step, mn)
			w.Scalar("E_loc/max", step, mx)
			if st.acc.Buffered() == 0 {
				if est, err := st.acc.Estimate(); err == nil {
					w.Scalar("E/value", step, est.Value)
					w.Scalar("E/error", step, est.Err)
				}
			}
		}
	}
	return nil
}

// Evaluate drains a full SampleWF run and returns the final estimate.
// ErrNoEstimate is returned when the run was too short for even one
// block to commit past equilibration.
func Evaluate(wf physics.LocalEnergizer, s *sampler.Sampler, steps int, opts ...Option) (estimator.Estimate, error) {
	stream, err := SampleWF(wf, s, steps, opts...)
	if err != nil {
		return estimator.Estimate{}, err
	}
	var last *estimator.Estimate
	for {
		r, err := stream.Next()
		if err == ErrDone {
			break
		}
		if err != nil {
			return estimator.Estimate{}, err
		}
		if r.Energy != nil {
			last = r.Energy
		}
	}
	if last == nil {
		return estimator.Estimate{}, ErrNoEstimate
	}
	return *last, nil
}

func meanInt(xs []int) float64 {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func maxInt(xs []int) float64 {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return float64(m)
}

func meanExp(logs []float64) float64 {
	sum := 0.0
	for _, l := range logs {
		sum += math.Exp(l)
	}
	return sum / float64(len(logs))
}

func meanNorm(rs physics.Positions) float64 {
	sum, n := 0.0, 0
	for w := range rs {
		for _, r := range rs[w] {
			sum += r.Norm()
			n++
		}
	}
	return sum / float64(n)
}

func floatsMinMax(xs []float64) (float64, float64) {
	mn, mx := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		mn = math.Min(mn, x)
		mx = math.Max(mx, x)
	}
	return mn, mx
}
