// Package interval implements epochs as sets of closed time intervals.
//
// A [Set] is always normalized: intervals are sorted by start, have positive
// duration and never strictly overlap. Set algebra (union, intersection,
// difference) and the usual epoch manipulations (dropping short intervals,
// merging close ones, splitting into equal chunks) return new sets and never
// modify their receiver.
package interval
