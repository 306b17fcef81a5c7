// Package telemetry defines the scalar time-series sink the sampling
// engine reports into, plus a few ready-made sinks.
//
// Everything here is purely observational: a Writer never influences
// sampling, and a missing or failing sink must degrade to a skipped
// feature, never abort a chain. The engine treats a nil Writer as "no
// telemetry"; Nop is the explicit equivalent.
//
// Provided sinks:
//   - Nop: discards everything
//   - LogWriter: zerolog-backed, one debug event per scalar
//   - PromWriter: Prometheus gauge vector keyed by tag
//   - MultiWriter: fan-out to several sinks
package telemetry
