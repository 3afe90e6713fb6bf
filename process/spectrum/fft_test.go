package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-neuro/internal/testutil"
)

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		var acc complex128
		for j, v := range x {
			angle := -2 * math.Pi * float64((k*j)%n) / float64(n)
			acc += v * cmplx.Rect(1, angle)
		}
		out[k] = acc
	}
	return out
}

func TestFFTMatchesDFT(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 12, 16, 31, 100} {
		noise := testutil.DeterministicNoise(int64(n), 1, n)
		x := make([]complex128, n)
		for i, v := range noise {
			x[i] = complex(v, 0)
		}

		got, err := FFT(x)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveDFT(x)

		if len(got) != n {
			t.Fatalf("n=%d: len=%d", n, len(got))
		}
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

// Lengths where arbitrary-length algo-fft plans return wrong bins.
func TestFFTMatchesDFTLongComposite(t *testing.T) {
	for _, n := range []int{1000, 2000} {
		noise := testutil.DeterministicNoise(int64(n), 1, n)
		x := make([]complex128, n)
		for i, v := range noise {
			x[i] = complex(v, 0)
		}

		got, err := FFT(x)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveDFT(x)
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-8 {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestFFTEmpty(t *testing.T) {
	got, err := FFT(nil)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestFFTFreq(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, FFTFreq(4, 1), []float64{0, 0.25, -0.5, -0.25}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, FFTFreq(5, 0.1), []float64{0, 2, 4, -4, -2}, 1e-12)

	if FFTFreq(0, 1) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestSortedOrder(t *testing.T) {
	tests := []struct {
		n    int
		full bool
		want []int
	}{
		{4, false, []int{0, 1}},
		{4, true, []int{2, 3, 0, 1}},
		{5, false, []int{0, 1, 2}},
		{5, true, []int{3, 4, 0, 1, 2}},
	}

	for _, tc := range tests {
		got := sortedOrder(tc.n, tc.full)
		if len(got) != len(tc.want) {
			t.Fatalf("n=%d full=%v: got %v, want %v", tc.n, tc.full, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("n=%d full=%v: got %v, want %v", tc.n, tc.full, got, tc.want)
			}
		}
	}
}

func BenchmarkFFT(b *testing.B) {
	for _, n := range []int{1024, 1000} {
		x := make([]complex128, n)
		for i := range x {
			x[i] = complex(float64(i%7), 0)
		}
		b.Run(map[bool]string{true: "pow2", false: "bluestein"}[isPowerOf2(n)], func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = FFT(x)
			}
		})
	}
}
