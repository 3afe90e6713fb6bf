package testutil

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{1, 1 + 1e-13, true},
		{1, 1.1, false},
		{math.NaN(), math.NaN(), true},
		{math.NaN(), 0, false},
		{math.Inf(1), math.Inf(1), true},
		{math.Inf(1), math.Inf(-1), false},
	}
	for _, tc := range tests {
		if got := nearlyEqual(tc.a, tc.b, 1e-12); got != tc.want {
			t.Fatalf("nearlyEqual(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRequireSliceNearlyEqualNaN(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{math.NaN(), 1}, []float64{math.NaN(), 1 + 1e-13}, 1e-12)
}

func TestRequireTimesEqual(t *testing.T) {
	RequireTimesEqual(t, []float64{0.1, 0.2 + 1e-12}, []float64{0.1, 0.2})
	RequireNearlyEqual(t, "rate", 10+1e-10, 10, 1e-9)
}
