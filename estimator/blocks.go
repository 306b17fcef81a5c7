package estimator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultBlockSize is the usual number of samples reduced into one block.
const DefaultBlockSize = 10

// Block is one committed reduction of exactly blockSize consecutive
// samples: their mean and the standard error of that mean
// (sample std-dev / √blockSize). Blocks are immutable once
// committed.
type Block struct {
	Mean float64
	Err  float64
}

// Estimate is the running point estimate over all committed blocks:
// the mean of block means, with the spread of block means over
// √blockCount as its standard deviation. It is recomputed fresh on
// every commit and never mutated in place.
type Estimate struct {
	Value float64
	Err   float64
}

// Accumulator buffers raw samples and commits a Block whenever the
// buffer reaches the block size. The committed block sequence is
// append-only for the lifetime of one accumulation run.
type Accumulator struct {
	blockSize int
	buf       []float64
	blocks    []Block
}

// NewAccumulator returns an Accumulator committing blocks of blockSize
// samples.
func NewAccumulator(blockSize int) (*Accumulator, error) {
	if blockSize <= 0 {
		return nil, ErrBlockSize
	}
	return &Accumulator{
		blockSize: blockSize,
		buf:       make([]float64, 0, blockSize),
	}, nil
}

// Add buffers one sample. When the buffer fills it is reduced to a
// Block, committed, and cleared; the committed block and true are
// returned. Otherwise the zero Block and false.
func (a *Accumulator) Add(v float64) (Block, bool) {
	a.buf = append(a.buf, v)
	if len(a.buf) < a.blockSize {
		return Block{}, false
	}
	b := Block{
		Mean: stat.Mean(a.buf, nil),
		Err:  stat.StdDev(a.buf, nil) / math.Sqrt(float64(a.blockSize)),
	}
	a.blocks = append(a.blocks, b)
	a.buf = a.buf[:0]
	return b, true
}

// Buffered returns the number of samples waiting in the current,
// not-yet-committed block.
func (a *Accumulator) Buffered() int { return len(a.buf) }

// Blocks returns a copy of the committed block sequence.
func (a *Accumulator) Blocks() []Block {
	return append([]Block(nil), a.blocks...)
}

// Estimate combines all committed blocks into the current point
// estimate. It is a pure function of the committed sequence: calling it
// twice without an intervening commit yields identical values.
// ErrNoBlocks is returned before the first commit.
func (a *Accumulator) Estimate() (Estimate, error) {
	if len(a.blocks) == 0 {
		return Estimate{}, ErrNoBlocks
	}
	means := make([]float64, len(a.blocks))
	for i, b := range a.blocks {
		means[i] = b.Mean
	}
	return Estimate{
		Value: stat.Mean(means, nil),
		Err:   stat.PopStdDev(means, nil) / math.Sqrt(float64(len(means))),
	}, nil
}
