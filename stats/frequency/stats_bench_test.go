package frequency

import (
	"fmt"
	"math"
	"testing"
)

// makeTestMagnitude creates a deterministic test magnitude spectrum.
func makeTestMagnitude(n int) (freqs, mag []float64) {
	freqs = make([]float64, n)
	mag = make([]float64, n)
	for i := range mag {
		// Create a decaying spectrum with a few harmonics.
		f := float64(i) / float64(n)
		freqs[i] = f * 500

		mag[i] = math.Abs(math.Exp(-3*f) + 0.1*math.Sin(2*math.Pi*5*f))
	}

	return freqs, mag
}

func BenchmarkCalculate(b *testing.B) {
	for _, fftSize := range []int{64, 256, 1024, 4096, 16384} {
		freqs, mag := makeTestMagnitude(fftSize/2 + 1)

		b.Run(fmt.Sprintf("N=%d", fftSize), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_, _ = Calculate(freqs, mag)
			}
		})
	}
}

func BenchmarkBandPower(b *testing.B) {
	freqs, mag := makeTestMagnitude(8193)
	b.ReportAllocs()
	for range b.N {
		_, _ = BandPower(freqs, mag, 6, 10)
	}
}
