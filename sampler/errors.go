package sampler

import "errors"

var (
	// ErrNilRule is returned when New is given a nil proposal rule.
	ErrNilRule = errors.New("sampler: proposal rule is nil")

	// ErrNoWalkers is returned when the initial position batch is empty.
	ErrNoWalkers = errors.New("sampler: need at least one walker")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("sampler: invalid option supplied")

	// ErrBatchShape is returned by Batches for non-positive epoch or
	// batch sizes.
	ErrBatchShape = errors.New("sampler: epoch and batch sizes must be positive")
)
