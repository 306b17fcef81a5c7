package sampler

import "github.com/katalvlaran/qmc/physics"

// Minibatch is one shuffled training batch of flattened walker samples:
// batchSize rows of (electron positions, log-amplitude, sign).
type Minibatch struct {
	Rs     physics.Positions
	LogPsi []float64
	Sign   []float64
}

// BatchStream re-samples the chain epoch by epoch. Each epoch draws
// ceil(epochSize·batchSize/W) thinned steps, flattens the step×walker
// sample grid into one pool, shuffles it, and emits epochSize
// minibatches of batchSize rows; the chain then restarts before the
// next epoch. Pool rows beyond epochSize·batchSize are silently
// dropped, so a walker count that does not divide the requested batch
// size loses a trailing partial batch per epoch.
type BatchStream struct {
	s         *Sampler
	epochSize int
	batchSize int
	queue     []Minibatch
	started   bool
}

// Batches returns an infinite minibatch sequence over the chain.
// The stream owns the sampler's iteration; interleaving other Next or
// Step calls with the stream is undefined.
func (s *Sampler) Batches(epochSize, batchSize int) (*BatchStream, error) {
	if epochSize <= 0 || batchSize <= 0 {
		return nil, ErrBatchShape
	}
	return &BatchStream{s: s, epochSize: epochSize, batchSize: batchSize}, nil
}

// Next returns the next minibatch, sampling a fresh epoch whenever the
// previous one is exhausted.
func (b *BatchStream) Next() (Minibatch, error) {
	if len(b.queue) == 0 {
		if err := b.fill(); err != nil {
			return Minibatch{}, err
		}
	}
	m := b.queue[0]
	b.queue = b.queue[1:]
	return m, nil
}

// fill samples one epoch into the queue.
func (b *BatchStream) fill() error {
	if b.started {
		if err := b.s.Restart(); err != nil {
			return err
		}
	}
	b.started = true

	w := b.s.Walkers()
	nSteps := (b.epochSize*b.batchSize + w - 1) / w
	n := b.s.st.Rs.Electrons()
	poolRs := physics.NewPositions(nSteps*w, n)
	poolLog := make([]float64, 0, nSteps*w)
	poolSign := make([]float64, 0, nSteps*w)
	for k := 0; k < nSteps; k++ {
		smp, err := b.s.Next()
		if err != nil {
			return err
		}
		for i := range smp.Rs {
			copy(poolRs[k*w+i], smp.Rs[i])
		}
		poolLog = append(poolLog, smp.LogPsi...)
		poolSign = append(poolSign, smp.Sign...)
	}

	perm := b.s.rng.Perm(len(poolRs))
	b.queue = make([]Minibatch, 0, b.epochSize)
	for i := 0; i < b.epochSize; i++ {
		m := Minibatch{
			Rs:     physics.NewPositions(b.batchSize, n),
			LogPsi: make([]float64, b.batchSize),
			Sign:   make([]float64, b.batchSize),
		}
		for j := 0; j < b.batchSize; j++ {
			src := perm[i*b.batchSize+j]
			copy(m.Rs[j], poolRs[src])
			m.LogPsi[j] = poolLog[src]
			m.Sign[j] = poolSign[src]
		}
		b.queue = append(b.queue, m)
	}
	return nil
}
