package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMolecule is returned by FromName for an unrecognized preset.
	ErrUnknownMolecule = errors.New("physics: unknown molecule preset")

	// ErrNoAtoms indicates a System without atoms where one is required.
	ErrNoAtoms = errors.New("physics: system has no atoms")
)

// DecompositionError reports a numerical-decomposition failure inside a
// force (gradient) computation. It carries the indices of the offending
// walkers; the Langevin proposal augments it with their positions before
// re-raising, so callers can inspect or persist the failing
// configurations. The in-flight step is fatal; retry policy is the
// caller's concern.
type DecompositionError struct {
	// Walkers are the indices of the walkers whose decomposition failed.
	Walkers []int
	// Rs holds the offending walker positions, when known.
	Rs Positions
}

// Error implements the error interface.
func (e *DecompositionError) Error() string {
	return fmt.Sprintf("physics: decomposition failed for %d walker(s) %v", len(e.Walkers), e.Walkers)
}
