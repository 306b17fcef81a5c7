// Package evaluate: options and result types of the sampling loop.
package evaluate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qmc/estimator"
	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/telemetry"
)

var (
	// ErrDone signals the end of a Stream, like io.EOF.
	ErrDone = errors.New("evaluate: sample stream exhausted")

	// ErrNilEnergizer is returned when SampleWF is given no local-energy
	// operator.
	ErrNilEnergizer = errors.New("evaluate: local-energy operator is nil")

	// ErrNilSampler is returned when SampleWF is given no sampler.
	ErrNilSampler = errors.New("evaluate: sampler is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("evaluate: invalid option supplied")

	// ErrNoEstimate is returned by Evaluate when the run ended before a
	// single block could commit.
	ErrNoEstimate = errors.New("evaluate: run produced no energy estimate")
)

// Options configures the sampling loop.
type Options struct {
	// BlockSize is the number of energy samples reduced into one block;
	// the equilibration window is 5·BlockSize.
	BlockSize int

	// Equilibrate gates energy accumulation behind the online
	// equilibration detector. When false, accumulation starts at the
	// first step.
	Equilibrate bool

	// Writer receives the loop's diagnostic series; nil disables them.
	Writer telemetry.Writer

	// internal error recorded during option parsing
	err error
}

// Option configures SampleWF via functional arguments.
type Option func(*Options)

// DefaultOptions returns the loop defaults: block size
// estimator.DefaultBlockSize, equilibration detection on, no telemetry.
func DefaultOptions() Options {
	return Options{
		BlockSize:   estimator.DefaultBlockSize,
		Equilibrate: true,
	}
}

// WithBlockSize sets the block size; it must be positive.
func WithBlockSize(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: BlockSize must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.BlockSize = n
	}
}

// WithoutEquilibration starts accumulating energies from the very first
// step instead of waiting for the detector.
func WithoutEquilibration() Option {
	return func(o *Options) { o.Equilibrate = false }
}

// WithWriter attaches a telemetry sink to the loop.
func WithWriter(w telemetry.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// Result is one yielded event of the stream.
type Result struct {
	// Step is the index of the consumed sample that produced the event.
	Step int

	// Energy is the estimate recomputed at a block commit; nil on the
	// one-time equilibration event and before the first commit.
	Energy *estimator.Estimate

	// Samples holds the flattened walker positions buffered since the
	// previous commit (blockSize·W rows); nil whenever Energy is nil.
	Samples physics.Positions
}
