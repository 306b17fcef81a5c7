package sampler

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/katalvlaran/qmc/physics"
)

// DefaultElecStd is the standard deviation (bohr) of the atom-centred
// Gaussians walkers are seeded from.
const DefaultElecStd = 1.0

// RandFromMeanField draws initial walker positions from atom-centred
// Gaussians weighted by the system's mean-field electron populations.
//
// Populations are first rescaled to sum to the system's electron count,
// so the default Population = Z stays usable for ions. Per atom,
// floor(population) electrons are assigned outright; the fractional
// remainders are resolved per walker by drawing the missing electrons
// over atoms without replacement, weighted by the remainders, so every
// walker carries exactly the system's electron count. The
// electron-to-atom assignment is then randomly permuted per walker and
// each electron is placed at its atom plus N(0, elecStd) noise.
//
// A nil rng falls back to a DefaultSeed-seeded source.
func RandFromMeanField(sys *physics.System, walkers int, elecStd float64, rng *rand.Rand) (physics.Positions, error) {
	if sys == nil || len(sys.Atoms) == 0 {
		return nil, physics.ErrNoAtoms
	}
	if walkers <= 0 {
		return nil, ErrNoWalkers
	}
	if elecStd <= 0 {
		return nil, fmt.Errorf("%w: elecStd must be positive (%v)", ErrOptionViolation, elecStd)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}

	nAtoms := len(sys.Atoms)
	nElec := sys.NElectrons()
	popSum := 0.0
	for _, atom := range sys.Atoms {
		popSum += atom.Population
	}
	if popSum <= 0 {
		return nil, fmt.Errorf("%w: populations must sum to a positive value (%v)", ErrOptionViolation, popSum)
	}
	// populations sum to ΣZ by default; ions need them renormalized to
	// the actual electron count before splitting
	scale := float64(nElec) / popSum
	base := make([]int, nAtoms)
	rem := make([]float64, nAtoms)
	baseSum := 0
	for a, atom := range sys.Atoms {
		pop := atom.Population * scale
		f := math.Floor(pop)
		base[a] = int(f)
		rem[a] = pop - f
		baseSum += base[a]
	}
	remSize := nElec - baseSum

	normal := distuv.Normal{Mu: 0, Sigma: elecStd, Src: rng}
	rs := physics.NewPositions(walkers, nElec)
	repeats := make([]int, nAtoms)
	for w := 0; w < walkers; w++ {
		copy(repeats, base)
		if remSize > 0 {
			weighted := sampleuv.NewWeighted(append([]float64(nil), rem...), rng)
			for k := 0; k < remSize; k++ {
				if a, ok := weighted.Take(); ok {
					repeats[a]++
				} else {
					// remainder weights exhausted (charged system):
					// spread the leftover electrons round-robin
					repeats[k%nAtoms]++
				}
			}
		}
		idxs := make([]int, 0, nElec)
		for a, ct := range repeats {
			for j := 0; j < ct; j++ {
				idxs = append(idxs, a)
			}
		}
		rng.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		for i, a := range idxs {
			noise := physics.Vec3{normal.Rand(), normal.Rand(), normal.Rand()}
			rs[w][i] = sys.Atoms[a].Coord.Add(noise)
		}
	}
	return rs, nil
}
