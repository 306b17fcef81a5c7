// Package qmc is a variational Monte Carlo engine: it estimates the
// ground-state energy of an electronic quantum system by Markov-chain
// sampling of |ψ|² with streaming, correctly-error-barred statistics.
//
// 🚀 What is qmc?
//
//	A sampling and statistics toolkit for many-electron wave functions:
//	  • Metropolis and Langevin (drift-corrected) Markov-chain walkers
//	  • Adaptive step-size control towards a target acceptance ratio
//	  • Online equilibration detection on a sliding spread window
//	  • Blocked-mean energy accumulation with propagated uncertainty
//	  • Epoch-based minibatch re-sampling for training consumers
//
// ✨ Why choose qmc?
//
//   - Exact step semantics: rejected walkers keep their state bit for bit
//   - Streaming: energy estimates update block by block as the chain runs
//   - Model-agnostic: anything evaluating (log|ψ|, sign) can be sampled
//   - Observable: every chain scalar flows into a pluggable telemetry sink
//
// Everything is organized under five subpackages:
//
//	physics/   model contracts, force/local-energy operators, presets
//	sampler/   walker state, proposal rules, the chain driver
//	estimator/ blocks, energy estimates, equilibration detection
//	evaluate/  the streaming sample-and-accumulate loop
//	telemetry/ scalar time-series sinks (zerolog, Prometheus)
//
// Quick sketch:
//
//	sys, _ := physics.FromName("H2")
//	wf := &physics.HydrogenLike{Sys: sys, Zeta: 1}
//	rs, _ := sampler.RandFromMeanField(sys, 500, 1.0, nil)
//	s, _ := sampler.New(&sampler.Metropolis{WF: wf}, rs)
//	est, _ := evaluate.Evaluate(wf, s, 500)
//	fmt.Printf("E = %.4f ± %.4f\n", est.Value, est.Err)
//
// See cmd/qmc for the command-line front end.
//
//	go get github.com/katalvlaran/qmc
package qmc
