package core

import (
	"math"
	"sort"
)

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsSorted reports whether ts is non-decreasing.
func IsSorted(ts []float64) bool {
	return sort.Float64sAreSorted(ts)
}

// HasNaN reports whether any element of v is NaN.
func HasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// Linspace returns n evenly spaced values over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// SearchLeft returns the first index i with ts[i] >= v.
func SearchLeft(ts []float64, v float64) int {
	return sort.SearchFloat64s(ts, v)
}

// SearchRight returns the first index i with ts[i] > v.
func SearchRight(ts []float64, v float64) int {
	return sort.Search(len(ts), func(i int) bool { return ts[i] > v })
}
