package sampler_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/qmc/physics"
	"github.com/katalvlaran/qmc/sampler"
)

func TestBatches_ShapeErrors(t *testing.T) {
	s, _ := newTestChain(t, 8)
	_, err := s.Batches(0, 10)
	assert.ErrorIs(t, err, sampler.ErrBatchShape)
	_, err = s.Batches(10, 0)
	assert.ErrorIs(t, err, sampler.ErrBatchShape)
	_, err = s.Batches(-1, -1)
	assert.ErrorIs(t, err, sampler.ErrBatchShape)
}

// TestBatches_Shapes: 100 walkers, 4 batches of 50 per epoch → each
// epoch draws exactly 2 thinned steps and every batch has 50 rows of
// the right electron count.
func TestBatches_Shapes(t *testing.T) {
	sys, err := physics.FromName("He")
	require.NoError(t, err)
	wf := &countingWF{inner: &physics.HydrogenLike{Sys: sys, Zeta: 2}}
	rs, err := sampler.RandFromMeanField(sys, 100, 1.0, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	s, err := sampler.New(&sampler.Metropolis{WF: wf}, rs,
		sampler.WithDiscard(0),
		sampler.WithDecorrelate(0),
	)
	require.NoError(t, err)

	stream, err := s.Batches(4, 50)
	require.NoError(t, err)

	base := wf.calls
	for i := 0; i < 4; i++ {
		m, err := stream.Next()
		require.NoError(t, err)
		assert.Equal(t, 50, m.Rs.Walkers(), "batch %d row count", i)
		assert.Equal(t, 2, m.Rs.Electrons())
		assert.Len(t, m.LogPsi, 50)
		assert.Len(t, m.Sign, 50)
	}
	// epochSize·batchSize / W = 200/100 = 2 chain steps for the epoch
	assert.Equal(t, base+2, wf.calls)

	// the 5th batch triggers a fresh epoch: restart evaluation + 2 steps
	_, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, base+2+3, wf.calls)
}

// TestBatches_PoolIsPermutation: with a one-step epoch the union of the
// emitted batch rows equals the walker batch itself, reshuffled.
func TestBatches_PoolIsPermutation(t *testing.T) {
	s, _ := newTestChain(t, 60,
		sampler.WithDiscard(0),
		sampler.WithDecorrelate(0),
		sampler.WithSeed(9),
	)
	stream, err := s.Batches(3, 20)
	require.NoError(t, err)

	var got []float64
	for i := 0; i < 3; i++ {
		m, err := stream.Next()
		require.NoError(t, err)
		got = append(got, m.LogPsi...)
	}
	want := append([]float64(nil), s.State().LogPsi...)
	sort.Float64s(got)
	sort.Float64s(want)
	assert.Equal(t, want, got, "batches must repartition the walker pool")
}

// TestBatches_RowsAreCopies: mutating a delivered batch must not feed
// back into the chain.
func TestBatches_RowsAreCopies(t *testing.T) {
	s, _ := newTestChain(t, 10,
		sampler.WithDiscard(0),
		sampler.WithDecorrelate(0),
	)
	stream, err := s.Batches(1, 10)
	require.NoError(t, err)
	m, err := stream.Next()
	require.NoError(t, err)

	pre := s.State().Rs.Clone()
	for w := range m.Rs {
		for i := range m.Rs[w] {
			m.Rs[w][i] = physics.Vec3{999, 999, 999}
		}
	}
	assert.Equal(t, pre, s.State().Rs)
}
