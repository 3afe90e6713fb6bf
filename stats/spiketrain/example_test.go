package spiketrain_test

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/stats/spiketrain"
)

func ExampleCalculateTimes() {
	s := spiketrain.CalculateTimes([]float64{0, 1, 3})
	fmt.Printf("isi=%.1f cv=%.2f\n", s.MeanISI, s.CV)

	// Output:
	// isi=1.5 cv=0.33
}

func ExampleStreamingStats() {
	s := spiketrain.NewStreamingStats()
	s.Update([]float64{0, 0.5})
	s.Update([]float64{1, 1.5})
	m := s.Result(1.5)
	fmt.Printf("n=%d rate=%.2f\n", m.Count, m.Rate)

	// Output:
	// n=4 rate=2.67
}
