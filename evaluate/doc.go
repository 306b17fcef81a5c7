// Package evaluate wires the pieces together: it consumes the lazy
// sample stream of a sampler.Sampler, detects equilibration online, and
// routes local energies through the block estimator into a streaming
// energy estimate with error bars.
//
// SampleWF is the low-level streaming interface. It yields a Result
// whenever something reportable happens: once when equilibration first
// triggers (both Energy and Samples nil), and then every committed
// block, carrying the fresh Estimate and the raw walker positions
// buffered since the previous commit. Evaluate is the high-level
// wrapper that drains the stream and returns the final estimate.
package evaluate
