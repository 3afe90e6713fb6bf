package core

import (
	"errors"
	"fmt"
	"strings"
)

// TimeUnit identifies the unit of a timestamp or duration.
type TimeUnit string

const (
	Seconds      TimeUnit = "s"
	Milliseconds TimeUnit = "ms"
	Microseconds TimeUnit = "us"
)

// ErrUnknownTimeUnit is returned when a time unit string is not recognized.
var ErrUnknownTimeUnit = errors.New("unknown time unit")

// ParseTimeUnit parses "s", "ms" or "us". The empty string means seconds.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "msec", "milliseconds":
		return Milliseconds, nil
	case "us", "usec", "microseconds":
		return Microseconds, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
	}
}

// Valid reports whether u is one of the supported units.
func (u TimeUnit) Valid() bool {
	switch u {
	case Seconds, Milliseconds, Microseconds:
		return true
	default:
		return false
	}
}

// String returns the short unit name.
func (u TimeUnit) String() string {
	if u == "" {
		return string(Seconds)
	}
	return string(u)
}

// factor returns how many units fit in one second.
func (u TimeUnit) factor() float64 {
	switch u {
	case Milliseconds:
		return 1e3
	case Microseconds:
		return 1e6
	default:
		return 1
	}
}

// ToSeconds converts v expressed in unit u to seconds.
func ToSeconds(v float64, u TimeUnit) float64 {
	return v / u.factor()
}

// FromSeconds converts v seconds to unit u.
func FromSeconds(v float64, u TimeUnit) float64 {
	return v * u.factor()
}

// FormatTimestamps returns a copy of ts converted from unit u to seconds.
func FormatTimestamps(ts []float64, u TimeUnit) []float64 {
	out := make([]float64, len(ts))
	f := u.factor()
	for i, t := range ts {
		out[i] = t / f
	}
	return out
}

// ReturnTimestamps returns a copy of ts (seconds) converted to unit u.
func ReturnTimestamps(ts []float64, u TimeUnit) []float64 {
	out := make([]float64, len(ts))
	f := u.factor()
	for i, t := range ts {
		out[i] = t * f
	}
	return out
}
