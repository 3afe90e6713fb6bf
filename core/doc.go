// Package core holds the shared vocabulary of algo-neuro: time units,
// timestamp precision and small numeric helpers.
//
// All timestamps handled by the library are stored in seconds. Public
// functions that accept durations take a [TimeUnit] so callers can work in
// milliseconds or microseconds; values are converted once at the boundary.
package core
