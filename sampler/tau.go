package sampler

import "math"

// AdjustTau is the adaptive step-size controller: it rescales τ after a
// step so that the chain's acceptance ratio is steered towards target,
//
//	τ ← τ / (target / max(acceptance, 0.05)),
//
// shrinking the step when acceptance falls below target and growing it
// otherwise. The 0.05 floor keeps a near-dead chain from blowing the
// step size up without bound. A zero target disables the controller and
// returns τ unchanged.
func AdjustTau(tau, acceptance, target float64) float64 {
	if target == 0 {
		return tau
	}
	return tau / (target / math.Max(acceptance, minAcceptance))
}
