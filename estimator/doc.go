// Package estimator turns a stream of serially-correlated local-energy
// samples into a statistically sound point estimate with error bars.
//
// Two cooperating pieces:
//
//   - Detector watches a sliding window of a scalar chain summary (mean
//     pairwise walker spread) and flips, exactly once per run, from
//     "warming up" to "accumulating" when the summary's spread settles.
//   - Accumulator groups consecutive samples into fixed-size blocks,
//     reduces each block to a (mean, standard error) pair, and combines
//     the committed blocks into a running Estimate. Blocking decorrelates
//     the samples, so the propagated uncertainty is correctly scaled.
//
// An Estimate exists only after the first block commit; before that the
// chain is still inside its first block and has nothing defensible to
// report.
package estimator
