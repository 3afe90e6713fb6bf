// Package correlogram computes auto-, cross- and event-correlograms of spike
// trains.
//
// A correlogram counts, for every reference event, the target events falling
// in each lag bin of a symmetric window, then divides by the number of
// reference events and the bin width. The result is therefore a rate in Hz;
// with normalization enabled it is further divided by the target's mean rate,
// so an uncorrelated pair sits around 1.
//
// Lags are always reported in seconds, rounded to microseconds, whatever the
// time unit used to express the bin and window sizes.
package correlogram
