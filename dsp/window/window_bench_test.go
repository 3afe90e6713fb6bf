package window

import (
	"strconv"
	"testing"
)

func BenchmarkGenerateHamming(b *testing.B) {
	for _, n := range []int{256, 1000, 4096} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Generate(TypeHamming, n)
			}
		})
	}
}

func BenchmarkGaussian(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Gaussian(61, 10)
	}
}

func BenchmarkConvolve1D(b *testing.B) {
	k, _ := GaussianKernel(3, DefaultTruncate)
	x := make([]float64, 4096)
	for _, mode := range []Mode{ModeConstant, ModeNearest, ModeReflect, ModeWrap} {
		b.Run(strconv.Itoa(int(mode)), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Convolve1D(x, k, mode)
			}
		})
	}
}
