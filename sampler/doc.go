// Package sampler implements Markov-chain Monte Carlo sampling of
// many-electron wave functions: a batch of independent walkers evolved
// step by step under a proposal/acceptance rule, with adaptive step-size
// control, burn-in discard, and decorrelation thinning.
//
// Two proposal rules are provided:
//
//   - Metropolis: isotropic Gaussian moves of width τ, accepted with
//     the plain Metropolis-Hastings ratio |ψ'/ψ|².
//   - Langevin: diffusive moves biased by the quantum force
//     2·∇log|ψ|, with the Green's-function asymmetry correction needed
//     for detailed balance.
//
// A Sampler owns its walker State exclusively and mutates it in place
// each Step; rejected walkers keep their previous position, amplitude,
// sign, and force bit for bit. The lazy sequence Next applies the
// configured burn-in discard and thinning; Batches re-samples the chain
// epoch by epoch into shuffled minibatches for downstream consumers.
//
// Construction:
//
//	sys, _ := physics.FromName("H2")
//	wf := &physics.HydrogenLike{Sys: sys, Zeta: 1}
//	rs, _ := sampler.RandFromMeanField(sys, 2000, 1.0, rng)
//	s, _ := sampler.New(&sampler.Metropolis{WF: wf}, rs,
//	    sampler.WithTau(0.1), sampler.WithSeed(42))
//	for {
//	    smp, err := s.Next()
//	    ...
//	}
//
// Concurrency: a Sampler is single-consumer. Step mutates shared walker
// state, so iterating one Sampler from two goroutines is undefined.
package sampler
