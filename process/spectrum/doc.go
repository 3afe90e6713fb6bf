// Package spectrum computes power spectral densities of sampled signals.
//
// Both estimators assume a constant sampling rate. [PowerSpectralDensity]
// transforms a single epoch in one FFT; [MeanPowerSpectralDensity] averages
// Hamming-windowed FFTs of equally sized, possibly overlapping sub-epochs,
// trading frequency resolution for a smoother estimate.
//
// Results keep the complex FFT bins so callers can derive magnitude, power or
// phase. Frequencies are sorted in ascending order; by default only the
// non-negative half is returned.
package spectrum
