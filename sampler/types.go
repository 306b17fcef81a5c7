// Package sampler: tunable options, defaults, and step result types.
package sampler

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

// Defaults for sampler construction. They follow the values the chains
// are usually run with in production evaluations.
const (
	// DefaultTau is the initial proposal step size.
	DefaultTau = 0.1
	// DefaultNFirstCertain is the number of initial steps accepted
	// unconditionally, warming the proposal itself up.
	DefaultNFirstCertain = 3
	// DefaultTargetAcceptance is the acceptance ratio the step-size
	// controller steers towards.
	DefaultTargetAcceptance = 0.57
	// DefaultNDiscard is the number of leading steps executed but not
	// yielded (burn-in discard).
	DefaultNDiscard = 50
	// DefaultNDecorrelate is the number of extra steps between yielded
	// samples (decorrelation thinning).
	DefaultNDecorrelate = 1
	// DefaultSeed seeds the chain RNG when none is supplied.
	DefaultSeed = 1

	// minAcceptance floors the instantaneous acceptance ratio inside the
	// step-size update, preventing runaway step-size blow-up when the
	// chain momentarily accepts (almost) nothing.
	minAcceptance = 0.05
)

// Options holds the sampler configuration. Zero values mean "disabled"
// for MaxAge and TargetAcceptance; a LogPsiThreshold of −Inf disables
// the log-amplitude floor.
type Options struct {
	// Tau is the initial proposal step size τ.
	Tau float64

	// MaxAge forces acceptance of any walker that has gone MaxAge steps
	// without a move. 0 disables the override.
	MaxAge int

	// NFirstCertain makes the first NFirstCertain steps of a chain
	// lifetime unconditionally accepted.
	NFirstCertain int

	// LogPsiThreshold force-rejects proposals whose log-amplitude falls
	// below the threshold, unless the walker is already below it and the
	// proposal improves on its current value (the escape clause for
	// trapped low-probability walkers). −Inf disables the floor.
	LogPsiThreshold float64

	// TargetAcceptance steers the adaptive step-size controller.
	// 0 holds τ fixed.
	TargetAcceptance float64

	// NDiscard is the burn-in discard applied by Next.
	NDiscard int

	// NDecorrelate is the thinning applied by Next: one sample is
	// yielded every NDecorrelate+1 steps.
	NDecorrelate int

	// Writer receives per-step diagnostics; nil disables telemetry.
	Writer telemetry.Writer

	// Seed seeds the chain's private RNG.
	Seed uint64

	// internal error recorded during option parsing
	err error
}

// Option configures a Sampler via functional arguments. Invalid values
// are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// DefaultOptions returns the production defaults described on the
// package constants.
func DefaultOptions() Options {
	return Options{
		Tau:              DefaultTau,
		NFirstCertain:    DefaultNFirstCertain,
		LogPsiThreshold:  math.Inf(-1),
		TargetAcceptance: DefaultTargetAcceptance,
		NDiscard:         DefaultNDiscard,
		NDecorrelate:     DefaultNDecorrelate,
		Seed:             DefaultSeed,
	}
}

// WithTau sets the initial proposal step size; τ must be positive.
func WithTau(tau float64) Option {
	return func(o *Options) {
		if tau <= 0 {
			o.err = fmt.Errorf("%w: Tau must be positive (%v)", ErrOptionViolation, tau)
			return
		}
		o.Tau = tau
	}
}

// WithMaxAge enables the stuck-walker override: a walker rejected for
// age consecutive steps is moved with 100% acceptance. age == 0
// explicitly disables the override.
func WithMaxAge(age int) Option {
	return func(o *Options) {
		if age < 0 {
			o.err = fmt.Errorf("%w: MaxAge cannot be negative (%d)", ErrOptionViolation, age)
			return
		}
		o.MaxAge = age
	}
}

// WithNFirstCertain sets the count of unconditionally accepted leading
// steps.
func WithNFirstCertain(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: NFirstCertain cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.NFirstCertain = n
	}
}

// WithLogPsiThreshold enables the log-amplitude floor.
func WithLogPsiThreshold(th float64) Option {
	return func(o *Options) { o.LogPsiThreshold = th }
}

// WithTargetAcceptance sets the controller target; 0 disables step-size
// adaptation, values outside [0, 1] are rejected.
func WithTargetAcceptance(t float64) Option {
	return func(o *Options) {
		if t < 0 || t > 1 {
			o.err = fmt.Errorf("%w: TargetAcceptance must lie in [0, 1] (%v)", ErrOptionViolation, t)
			return
		}
		o.TargetAcceptance = t
	}
}

// WithDiscard sets the burn-in discard.
func WithDiscard(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: NDiscard cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.NDiscard = n
	}
}

// WithDecorrelate sets the thinning between yielded samples.
func WithDecorrelate(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: NDecorrelate cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.NDecorrelate = n
	}
}

// WithWriter attaches a telemetry sink.
func WithWriter(w telemetry.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// WithSeed seeds the chain's RNG for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// Info carries the per-step diagnostics attached to a Sample.
type Info struct {
	// Acceptance is the batch acceptance ratio of the step.
	Acceptance float64
	// Age[w] is the number of steps since walker w last moved.
	Age []int
	// Tau is the proposal step size after the step's controller update.
	Tau float64
}

// Sample is one yielded step result. All fields are snapshots: mutating
// them does not touch the sampler's state.
type Sample struct {
	Rs     physics.Positions
	LogPsi []float64
	Sign   []float64
	Info   Info
}
