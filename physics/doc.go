// Package physics defines the contracts between the sampling engine and
// the quantum-mechanical collaborators it drives: wave-function models,
// local-energy and quantum-force operators, and molecular system
// descriptors.
//
// The sampling core (package sampler) treats these as black boxes: it
// only needs a way to evaluate log-amplitudes and signs, and, for the
// drift-corrected Langevin proposal, gradients of the log-amplitude.
// Anything satisfying WaveFunction (and Gradient, for Langevin chains)
// can be sampled.
//
// The package also ships a closed-form reference model, HydrogenLike,
// with analytic gradients and local energies, plus a handful of named
// molecular presets (FromName), so the whole pipeline is runnable and
// testable without any external model.
//
// Conventions:
//   - Walker positions are W×N×3: W independent walkers, each an ordered
//     set of N electron coordinates (Vec3), in atomic units (bohr).
//   - Wave-function values are carried as (log|ψ|, sign ψ) pairs to avoid
//     overflow.
//   - Quantum forces are 2·∇log|ψ|, shaped like positions.
package physics
