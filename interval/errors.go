package interval

import "errors"

var (
	// ErrLengthMismatch is returned when starts and ends differ in length.
	ErrLengthMismatch = errors.New("interval: starts and ends must have the same length")
	// ErrNaN is returned when a bound is NaN.
	ErrNaN = errors.New("interval: bounds must not be NaN")
	// ErrInvalidSize is returned when a split size or threshold is not positive.
	ErrInvalidSize = errors.New("interval: size must be > 0")
	// ErrInvalidOverlap is returned when an overlap ratio is outside [0, 1).
	ErrInvalidOverlap = errors.New("interval: overlap must be in [0, 1)")
)
