package estimator

import "gonum.org/v1/gonum/stat"

// windowBlocks sizes the detector window in units of the block size.
const windowBlocks = 5

// Detector is the online equilibration test. It keeps a sliding window
// of 5·blockSize entries of a scalar chain summary, recorded once per
// yielded chain step. Once the window is full, equilibrium is declared
// the first time the spread (std-dev) of the newest blockSize entries
// drops below the spread of the oldest blockSize entries: the summary
// has stopped drifting and settled into its steady-state variance.
//
// The transition is one-way and one-time; afterwards the detector is
// inert and Equilibrated stays true for the rest of the run.
type Detector struct {
	win       []float64
	blockSize int
	done      bool
}

// NewDetector returns a Detector windowed for the given block size.
func NewDetector(blockSize int) (*Detector, error) {
	if blockSize <= 0 {
		return nil, ErrBlockSize
	}
	return &Detector{
		win:       make([]float64, windowBlocks*blockSize),
		blockSize: blockSize,
	}, nil
}

// Record pushes one summary value into the window and reports whether
// this exact call triggered the warm-up → accumulating transition.
// The window starts zero-filled; the test only runs once the oldest
// slot has been populated by a real (non-zero) value.
func (d *Detector) Record(v float64) bool {
	copy(d.win, d.win[1:])
	d.win[len(d.win)-1] = v
	if d.done || d.win[0] == 0 {
		return false
	}
	oldest := stat.StdDev(d.win[:d.blockSize], nil)
	newest := stat.StdDev(d.win[len(d.win)-d.blockSize:], nil)
	if newest < oldest {
		d.done = true
		return true
	}
	return false
}

// Equilibrated reports whether the transition has happened.
func (d *Detector) Equilibrated() bool { return d.done }
