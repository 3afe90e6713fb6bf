package spectrum

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// engine caches FFT plans for the duration of one computation. Plans are not
// shared between goroutines.
type engine struct {
	plans map[int]*algofft.Plan[complex128]
}

func newEngine() *engine {
	return &engine{plans: map[int]*algofft.Plan[complex128]{}}
}

func (e *engine) plan(n int) (*algofft.Plan[complex128], error) {
	if p, ok := e.plans[n]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan of size %d: %w", n, err)
	}
	e.plans[n] = p
	return p, nil
}

func isPowerOf2(n int) bool { return n > 0 && n&(n-1) == 0 }

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// FFT returns the discrete Fourier transform of x.
//
// Power-of-two lengths use a cached algo-fft plan directly; other lengths are
// evaluated exactly with Bluestein's chirp-z algorithm on top of power-of-two
// plans.
func FFT(x []complex128) ([]complex128, error) {
	return newEngine().fft(x)
}

func (e *engine) fft(x []complex128) ([]complex128, error) {
	n := len(x)
	switch {
	case n == 0:
		return nil, nil
	case n == 1:
		return []complex128{x[0]}, nil
	case isPowerOf2(n):
		p, err := e.plan(n)
		if err != nil {
			return nil, err
		}
		out := make([]complex128, n)
		if err := p.Forward(out, x); err != nil {
			return nil, fmt.Errorf("spectrum: forward fft: %w", err)
		}
		return out, nil
	default:
		// algo-fft plans accept any length but return wrong bins for
		// lengths such as 1000 and 2000; only power-of-two plans are used.
		return e.bluestein(x)
	}
}

func (e *engine) bluestein(x []complex128) ([]complex128, error) {
	n := len(x)
	m := nextPowerOf2(2*n - 1)

	// chirp[k] = exp(-i*pi*k^2/n); k^2 is reduced mod 2n to keep the angle small.
	chirp := make([]complex128, n)
	for k := range chirp {
		kk := (uint64(k) * uint64(k)) % uint64(2*n)
		angle := -math.Pi * float64(kk) / float64(n)
		chirp[k] = complex(math.Cos(angle), math.Sin(angle))
	}

	a := make([]complex128, m)
	for k := 0; k < n; k++ {
		a[k] = x[k] * chirp[k]
	}
	b := make([]complex128, m)
	b[0] = conj(chirp[0])
	for k := 1; k < n; k++ {
		b[k] = conj(chirp[k])
		b[m-k] = b[k]
	}

	p, err := e.plan(m)
	if err != nil {
		return nil, err
	}
	fa := make([]complex128, m)
	fb := make([]complex128, m)
	if err := p.Forward(fa, a); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}
	if err := p.Forward(fb, b); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	// Inverse transform as conj(FFT(conj(.)))/m.
	for i := range fa {
		fa[i] = conj(fa[i] * fb[i])
	}
	if err := p.Forward(fb, fa); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	out := make([]complex128, n)
	scale := complex(1/float64(m), 0)
	for k := range out {
		out[k] = conj(fb[k]) * scale * chirp[k]
	}
	return out, nil
}

func conj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// FFTFreq returns the sample frequencies of an n-point FFT with sample
// spacing d, in FFT order: 0, 1, ..., -n/2, ..., -1 divided by n*d.
func FFTFreq(n int, d float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	half := (n-1)/2 + 1
	den := float64(n) * d
	for i := 0; i < half; i++ {
		out[i] = float64(i) / den
	}
	for i := half; i < n; i++ {
		out[i] = float64(i-n) / den
	}
	return out
}

// sortedOrder returns the FFT bin positions in ascending frequency order,
// optionally limited to non-negative frequencies.
func sortedOrder(n int, fullRange bool) []int {
	half := (n-1)/2 + 1
	order := make([]int, 0, n)
	if fullRange {
		for i := half; i < n; i++ {
			order = append(order, i)
		}
	}
	for i := 0; i < half; i++ {
		order = append(order, i)
	}
	return order
}
