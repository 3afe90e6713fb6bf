package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-neuro/process/spectrum"
	"github.com/cwbudde/algo-neuro/series"
)

func ExamplePowerSpectralDensity() {
	sig, _ := series.NewTsdFrame(
		[]float64{0, 0.25, 0.5, 0.75},
		[][]float64{{1, 0, -1, 0}},
		[]string{"lfp"},
	)

	s, _ := spectrum.PowerSpectralDensity(sig, spectrum.WithSamplingRate(4))
	fmt.Println(s.Freqs)
	fmt.Printf("%.1f\n", s.Magnitude(0))

	// Output:
	// [0 1]
	// [0.0 2.0]
}
