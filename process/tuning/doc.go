// Package tuning computes tuning curves: the firing rate of every unit of a
// group as a function of a sampled behavioral feature such as position or
// head direction.
//
// The feature is binned with evenly spaced edges. Occupancy counts feature
// samples per bin; spike counts take, for every spike, the feature value of
// the closest sample. The curve is spike count over occupancy times the
// feature sampling rate, giving Hz. Bins never visited are NaN.
package tuning
