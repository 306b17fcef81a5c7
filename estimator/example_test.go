package estimator_test

import (
	"fmt"

	"github.com/katalvlaran/qmc/estimator"
)

// ExampleAccumulator reduces a short energy series into blocks of five
// and reads off the running estimate.
func ExampleAccumulator() {
	acc, _ := estimator.NewAccumulator(5)
	series := []float64{
		-2.1, -1.9, -2.0, -2.0, -2.0,
		-1.8, -2.2, -2.0, -2.1, -1.9,
	}
	for _, e := range series {
		if b, ok := acc.Add(e); ok {
			fmt.Printf("block: %.2f\n", b.Mean)
		}
	}
	est, _ := acc.Estimate()
	fmt.Printf("estimate: %.2f\n", est.Value)
	// Output:
	// block: -2.00
	// block: -2.00
	// estimate: -2.00
}
