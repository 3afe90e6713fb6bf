package series

import "errors"

var (
	// ErrNaNTime is returned when a timestamp is NaN.
	ErrNaNTime = errors.New("series: timestamps must not be NaN")
	// ErrLengthMismatch is returned when times and values differ in length.
	ErrLengthMismatch = errors.New("series: times and values must have the same length")
	// ErrInvalidBinSize is returned when a bin size is not positive.
	ErrInvalidBinSize = errors.New("series: bin size must be > 0")
	// ErrColumnNotFound is returned when a TsdFrame column does not exist.
	ErrColumnNotFound = errors.New("series: column not found")
)
