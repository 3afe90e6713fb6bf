// Package series provides timestamped data: event trains ([Ts]), sampled
// one-dimensional signals ([Tsd]) and multi-column signals ([TsdFrame]).
//
// Every series carries a time support, the epochs over which it is defined.
// Rates, counts and restrictions are computed relative to that support, so a
// unit that never fires during a long recording still has a well-defined
// firing rate of zero.
package series
