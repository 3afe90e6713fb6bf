package window

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCoefficients is returned for an empty coefficient slice.
	ErrEmptyCoefficients = errors.New("window: coefficients must not be empty")
	// ErrZeroCoherentGain is returned when the coefficients sum to zero.
	ErrZeroCoherentGain = errors.New("window: coherent gain is zero")
	// ErrLengthMismatch is returned when samples and coefficients differ in length.
	ErrLengthMismatch = errors.New("window: samples and coefficients must have same length")
	// ErrInvalidLength is returned for a non-positive window length.
	ErrInvalidLength = errors.New("window: length must be > 0")
	// ErrInvalidSigma is returned when a Gaussian width is not positive.
	ErrInvalidSigma = errors.New("window: gaussian sigma must be > 0")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}
	return nil
}
