// Package frequency summarizes one-sided spectra: peak, spectral shape and
// band power.
//
// Every function takes an explicit frequency axis aligned with the
// magnitude or power bins, as produced by the spectrum package.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-neuro/process/spectrum"
)

// DefaultRolloff is the energy fraction used by [Calculate] for Rolloff.
const DefaultRolloff = 0.85

var (
	// ErrLengthMismatch is returned when frequencies and bins differ in length.
	ErrLengthMismatch = errors.New("frequency: frequencies and bins must have same length")
	// ErrColumn is returned when a spectrum column does not exist.
	ErrColumn = errors.New("frequency: column out of range")
)

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount      int
	Sum           float64 // sum of magnitudes
	Max           float64
	MaxBin        int
	PeakFrequency float64 // frequency of Max (Hz)
	Min           float64
	MinBin        int
	Average       float64
	Energy        float64 // sum of squared magnitudes
	Power         float64 // Energy / BinCount
	// Spectral shape descriptors
	Centroid  float64 // spectral centroid (Hz)
	Spread    float64 // spectral spread (Hz)
	Flatness  float64 // spectral flatness (Wiener entropy), 0..1
	Rolloff   float64 // frequency below which 85% energy (Hz)
	Bandwidth float64 // 3 dB bandwidth around peak (Hz)
}

func check(freqs, bins []float64) error {
	if len(freqs) != len(bins) {
		return fmt.Errorf("%w: %d frequencies for %d bins", ErrLengthMismatch, len(freqs), len(bins))
	}
	return nil
}

// Calculate computes all statistics of a magnitude spectrum (linear scale)
// sampled at freqs.
func Calculate(freqs, magnitude []float64) (Stats, error) {
	if err := check(freqs, magnitude); err != nil {
		return Stats{}, err
	}

	n := len(magnitude)
	if n == 0 {
		return Stats{}, nil
	}

	s := Stats{BinCount: n, Min: magnitude[0], Max: magnitude[0]}
	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
		if v < s.Min {
			s.Min = v
			s.MinBin = i
		}
	}
	s.PeakFrequency = freqs[s.MaxBin]
	s.Average = s.Sum / float64(n)
	s.Power = s.Energy / float64(n)

	s.Centroid = centroid(freqs, magnitude, s.Sum)
	s.Spread = spread(freqs, magnitude, s.Centroid, s.Sum)
	s.Flatness = flatness(freqs, magnitude)
	s.Rolloff = rolloff(freqs, magnitude, DefaultRolloff, s.Energy)
	s.Bandwidth = bandwidth(freqs, magnitude)

	return s, nil
}

// FromSpectrum computes the statistics of column col of s. Negative
// frequencies are ignored.
func FromSpectrum(s *spectrum.Spectrum, col int) (Stats, error) {
	if s == nil || col < 0 || col >= len(s.Values) {
		return Stats{}, fmt.Errorf("%w: %d", ErrColumn, col)
	}

	mag := s.Magnitude(col)
	freqs := s.Freqs
	first := 0
	for first < len(freqs) && freqs[first] < 0 {
		first++
	}
	return Calculate(freqs[first:], mag[first:])
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(freqs, magnitude []float64) (float64, error) {
	if err := check(freqs, magnitude); err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(freqs, magnitude, sum), nil
}

func centroid(freqs, magnitude []float64, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += freqs[i] * v
	}
	return weightedSum / sumMag
}

// spread computes spectral spread (standard deviation of the spectrum around the centroid).
func spread(freqs, magnitude []float64, cent, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := freqs[i] - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// The 0 Hz bin is excluded. If any considered bin is zero, 0 is returned.
func Flatness(freqs, magnitude []float64) (float64, error) {
	if err := check(freqs, magnitude); err != nil {
		return 0, err
	}
	return flatness(freqs, magnitude), nil
}

func flatness(freqs, magnitude []float64) float64 {
	var (
		nBins   int
		sumLin  float64
		sumLog  float64
		hasZero bool
	)
	for i, v := range magnitude {
		if freqs[i] == 0 {
			continue
		}
		nBins++
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}
	if nBins == 0 || sumLin == 0 || hasZero {
		return 0
	}

	meanLin := sumLin / float64(nBins)
	geoMean := math.Exp(sumLog / float64(nBins))
	return geoMean / meanLin
}

// Rolloff returns the frequency below which the specified fraction (0..1) of
// spectral energy lies. Energy is the sum of squared magnitudes.
func Rolloff(freqs, magnitude []float64, percent float64) (float64, error) {
	if err := check(freqs, magnitude); err != nil {
		return 0, err
	}
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(freqs, magnitude, percent, energy), nil
}

func rolloff(freqs, magnitude []float64, percent, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

// Bandwidth returns the 3 dB bandwidth around the spectral peak in Hz,
// interpolating linearly between bins at the peak/sqrt(2) crossings.
func Bandwidth(freqs, magnitude []float64) (float64, error) {
	if err := check(freqs, magnitude); err != nil {
		return 0, err
	}
	return bandwidth(freqs, magnitude), nil
}

func bandwidth(freqs, magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := 0
	peakVal := magnitude[0]
	for i, v := range magnitude {
		if v > peakVal {
			peakVal = v
			peakBin = i
		}
	}
	if peakVal == 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lowerFreq := freqs[0]
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lowerFreq = interpFreq(freqs[i-1], freqs[i], magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upperFreq := freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upperFreq = interpFreq(freqs[i], freqs[i+1], magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	bw := upperFreq - lowerFreq
	if bw < 0 {
		return 0
	}
	return bw
}

func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

// BandPower sums power over bins with lo <= f < hi.
func BandPower(freqs, power []float64, lo, hi float64) (float64, error) {
	if err := check(freqs, power); err != nil {
		return 0, err
	}
	sum := 0.0
	for i, f := range freqs {
		if f >= lo && f < hi {
			sum += power[i]
		}
	}
	return sum, nil
}

// RelativeBandPower returns BandPower divided by the total power. It is 0
// when the total power is 0.
func RelativeBandPower(freqs, power []float64, lo, hi float64) (float64, error) {
	band, err := BandPower(freqs, power, lo, hi)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, p := range power {
		total += p
	}
	if total == 0 {
		return 0, nil
	}
	return band / total, nil
}
