package testutil

import (
	"math"
	"math/rand"
)

// Arange returns start, start+step, ... strictly below stop.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// SampleTimes returns n timestamps sampled at rate Hz starting at 0.
func SampleTimes(rate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / rate
	}
	return out
}

// DeterministicSine samples amplitude*sin(2*pi*freqHz*t) at the given times.
func DeterministicSine(freqHz, amplitude float64, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*t)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PoissonTrain draws a homogeneous Poisson spike train of the given rate (Hz)
// over [0, duration) with a fixed seed.
func PoissonTrain(seed int64, rate, duration float64) []float64 {
	if rate <= 0 || duration <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	var out []float64
	for t := rng.ExpFloat64() / rate; t < duration; t += rng.ExpFloat64() / rate {
		out = append(out, t)
	}
	return out
}

// Add returns the element-wise sum of equally long slices.
func Add(parts ...[]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i := range out {
			out[i] += p[i]
		}
	}
	return out
}
