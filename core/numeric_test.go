package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp upper=%v", got)
	}
	if got := Clamp(-5, 1, 0); got != 0 {
		t.Fatalf("Clamp swapped bounds=%v", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1e9, 1e9+1e-4, 1e-12) {
		t.Fatalf("relative tolerance expected to match")
	}
	if NearlyEqual(0, 1e-6, 1e-9) {
		t.Fatalf("values should differ")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatalf("n=0 must return nil")
	}
	if one := Linspace(3, 4, 1); len(one) != 1 || one[0] != 3 {
		t.Fatalf("n=1 got %v", one)
	}
}

func TestSearch(t *testing.T) {
	ts := []float64{0, 1, 1, 2}
	if got := SearchLeft(ts, 1); got != 1 {
		t.Fatalf("SearchLeft=%d, want 1", got)
	}
	if got := SearchRight(ts, 1); got != 3 {
		t.Fatalf("SearchRight=%d, want 3", got)
	}
	if !IsSorted(ts) || IsSorted([]float64{2, 1}) {
		t.Fatalf("IsSorted mismatch")
	}
	if !HasNaN([]float64{1, math.NaN()}) || HasNaN(ts) {
		t.Fatalf("HasNaN mismatch")
	}
}
