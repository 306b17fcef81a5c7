package estimator

import "errors"

var (
	// ErrBlockSize is returned for a non-positive block size.
	ErrBlockSize = errors.New("estimator: block size must be positive")

	// ErrNoBlocks is returned by Estimate before any block has committed.
	ErrNoBlocks = errors.New("estimator: no blocks committed yet")
)
