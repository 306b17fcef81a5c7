// Package physics: core value types shared across the sampling engine.
package physics

import "math"

// Vec3 is a single electron coordinate in 3-space (bohr).
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v − w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the scalar product v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Norm returns the Euclidean length |v|.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Positions holds the electron coordinates of a batch of walkers:
// Positions[w][i] is electron i of walker w. All walkers carry the same
// electron count.
type Positions [][]Vec3

// Forces shares the walker×electron×3 shape of Positions.
type Forces = Positions

// NewPositions allocates a zeroed W×N position batch.
func NewPositions(walkers, electrons int) Positions {
	buf := make([]Vec3, walkers*electrons)
	rs := make(Positions, walkers)
	for w := range rs {
		rs[w] = buf[w*electrons : (w+1)*electrons : (w+1)*electrons]
	}
	return rs
}

// Walkers returns the leading (walker) dimension W.
func (p Positions) Walkers() int { return len(p) }

// Electrons returns the electron count N of the first walker,
// or 0 for an empty batch.
func (p Positions) Electrons() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Clone returns a deep copy of p.
func (p Positions) Clone() Positions {
	out := NewPositions(p.Walkers(), p.Electrons())
	for w := range p {
		copy(out[w], p[w])
	}
	return out
}

// CopyWalker overwrites walker w of p with walker w of src.
// Both batches must share shape; shapes are trusted, not validated.
func (p Positions) CopyWalker(w int, src Positions) {
	copy(p[w], src[w])
}

// Select returns a deep copy of the walkers named by idxs, in order.
func (p Positions) Select(idxs []int) Positions {
	out := NewPositions(len(idxs), p.Electrons())
	for i, w := range idxs {
		copy(out[i], p[w])
	}
	return out
}
