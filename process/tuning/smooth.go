package tuning

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-neuro/dsp/window"
)

// SmoothAngular smooths circular tuning curves with a centred rolling
// Gaussian window of win bins and standard deviation deviation (in bins).
//
// Each curve is tiled three times so the window wraps around 0 and 2*pi;
// the middle copy is kept. NaN bins are ignored by the weighted mean.
func SmoothAngular(tc *Curves, win int, deviation float64) (*Curves, error) {
	if tc == nil {
		return nil, ErrNilCurves
	}
	weights, err := window.Gaussian(win, deviation)
	if err != nil {
		return nil, fmt.Errorf("tuning: smoothing window: %w", err)
	}

	out := tc.clone()
	for _, k := range tc.Keys {
		curve := tc.Values[k]
		n := len(curve)
		tiled := make([]float64, 0, 3*n)
		tiled = append(tiled, curve...)
		tiled = append(tiled, curve...)
		tiled = append(tiled, curve...)

		smoothed := make([]float64, n)
		for i := range smoothed {
			smoothed[i] = rollingMean(tiled, n+i, weights)
		}
		out.Values[k] = smoothed
	}
	return out, nil
}

// rollingMean returns the weighted mean of x around position i. The window
// spans [i-len(w)+1+off, i+off] with off = (len(w)-1)/2.
func rollingMean(x []float64, i int, w []float64) float64 {
	off := (len(w) - 1) / 2
	lo := i - len(w) + 1 + off

	var sum, norm float64
	for j, wj := range w {
		p := lo + j
		if p < 0 || p >= len(x) || math.IsNaN(x[p]) {
			continue
		}
		sum += wj * x[p]
		norm += wj
	}
	if norm == 0 {
		return math.NaN()
	}
	return sum / norm
}

// Smooth1D convolves linear tuning curves with a unit-sum Gaussian kernel of
// standard deviation sigma bins. Edges repeat the nearest bin.
func Smooth1D(tc *Curves, sigma float64) (*Curves, error) {
	if tc == nil {
		return nil, ErrNilCurves
	}
	kernel, err := window.GaussianKernel(sigma, window.DefaultTruncate)
	if err != nil {
		return nil, fmt.Errorf("tuning: smoothing kernel: %w", err)
	}

	out := tc.clone()
	for _, k := range tc.Keys {
		out.Values[k] = window.Convolve1D(tc.Values[k], kernel, window.ModeNearest)
	}
	return out, nil
}

func (c *Curves) clone() *Curves {
	return &Curves{
		Edges:     append([]float64(nil), c.Edges...),
		Centers:   append([]float64(nil), c.Centers...),
		Keys:      append([]int(nil), c.Keys...),
		Values:    make(map[int][]float64, len(c.Values)),
		Occupancy: append([]float64(nil), c.Occupancy...),
	}
}
