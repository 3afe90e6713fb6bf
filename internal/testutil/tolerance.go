package testutil

import (
	"math"
	"testing"
)

// TimeEps is the tolerance for timestamps in seconds, matching the default
// nanosecond time index precision.
const TimeEps = 1e-9

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance). NaN matches NaN.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if !nearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireTimesEqual compares timestamp slices within TimeEps.
func RequireTimesEqual(t *testing.T, got, want []float64) {
	t.Helper()
	RequireSliceNearlyEqual(t, got, want, TimeEps)
}

// RequireNearlyEqual fails t if got and want differ by more than eps.
// NaN matches NaN.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if !nearlyEqual(got, want, eps) {
		t.Fatalf("%s = %v, want %v (eps %v)", name, got, want, eps)
	}
}

func nearlyEqual(a, b, eps float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= eps
}
