package window

import (
	"fmt"
	"math"
)

// Mode selects how [Convolve1D] extends the input beyond its edges.
type Mode int

const (
	// ModeConstant pads with zeros.
	ModeConstant Mode = iota
	// ModeNearest repeats the edge sample.
	ModeNearest
	// ModeReflect mirrors the input about its edge (d c b a | a b c d | d c b a).
	ModeReflect
	// ModeWrap wraps around to the opposite edge.
	ModeWrap
)

// DefaultTruncate is the kernel half-width in standard deviations.
const DefaultTruncate = 4.0

// Gaussian returns m samples of a Gaussian bell with standard deviation std
// in samples, centred on (m-1)/2 and peaking at 1.
func Gaussian(m int, std float64) ([]float64, error) {
	if err := validateLength(m); err != nil {
		return nil, err
	}
	if !(std > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSigma, std)
	}

	out := make([]float64, m)
	mid := float64(m-1) / 2
	for i := range out {
		d := float64(i) - mid
		out[i] = math.Exp(-d * d / (2 * std * std))
	}
	return out, nil
}

// GaussianKernel returns a unit-sum Gaussian kernel of standard deviation
// sigma in samples. The kernel radius is int(truncate*sigma + 0.5).
func GaussianKernel(sigma, truncate float64) ([]float64, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSigma, sigma)
	}
	if truncate <= 0 {
		truncate = DefaultTruncate
	}

	radius := int(truncate*sigma + 0.5)
	k, err := Gaussian(2*radius+1, sigma)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, v := range k {
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k, nil
}

// Convolve1D filters x with kernel and returns a slice of the same length.
// The kernel is centred on index len(kernel)/2.
func Convolve1D(x, kernel []float64, mode Mode) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	if len(kernel) == 0 {
		copy(out, x)
		return out
	}

	origin := len(kernel) / 2
	for i := range out {
		acc := 0.0
		for j, w := range kernel {
			v, ok := sampleAt(x, i+origin-j, mode)
			if ok {
				acc += w * v
			}
		}
		out[i] = acc
	}
	return out
}

func sampleAt(x []float64, i int, mode Mode) (float64, bool) {
	n := len(x)
	if i >= 0 && i < n {
		return x[i], true
	}

	switch mode {
	case ModeNearest:
		if i < 0 {
			return x[0], true
		}
		return x[n-1], true
	case ModeReflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return x[i], true
	case ModeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return x[i], true
	default:
		return 0, false
	}
}
