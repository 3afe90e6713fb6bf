package tuning_test

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/process/tuning"
)

func ExampleSmoothAngular() {
	tc := &tuning.Curves{
		Keys:   []int{0},
		Values: map[int][]float64{0: {4, 0, 0, 0}},
	}

	smoothed, _ := tuning.SmoothAngular(tc, 3, 1)
	fmt.Printf("%.3f\n", smoothed.Values[0])

	// Output:
	// [1.807 1.096 0.000 1.096]
}
