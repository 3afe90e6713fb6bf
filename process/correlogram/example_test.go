package correlogram_test

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/process/correlogram"
)

func ExampleCrossCorrelogram() {
	ref := []float64{0, 10}
	counts, lags := correlogram.CrossCorrelogram(ref, ref, 5, 10)
	fmt.Println(lags)
	fmt.Println(counts)

	// Output:
	// [-10 -5 0 5 10]
	// [0.1 0 0.2 0 0.1]
}
