package interval

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-neuro/core"
)

func TestUnion(t *testing.T) {
	a := MustNew([]float64{0, 20}, []float64{10, 30})
	b := MustNew([]float64{5, 40}, []float64{15, 50})
	requireSet(t, a.Union(b), []float64{0, 20, 40}, []float64{15, 30, 50})
}

func TestIntersect(t *testing.T) {
	a := MustNew([]float64{0, 20}, []float64{10, 30})
	b := MustNew([]float64{5, 25}, []float64{22, 40})
	requireSet(t, a.Intersect(b), []float64{5, 20, 25}, []float64{10, 22, 30})

	if !a.Intersect(Set{}).Empty() {
		t.Fatalf("intersection with empty set must be empty")
	}
}

func TestSetDiff(t *testing.T) {
	a := MustNew([]float64{0, 20}, []float64{10, 30})
	b := MustNew([]float64{2, 5, 18}, []float64{3, 7, 25})
	requireSet(t, a.SetDiff(b), []float64{0, 3, 7, 25}, []float64{2, 5, 10, 30})

	covered := Single(0, 10).SetDiff(Single(-1, 11))
	if !covered.Empty() {
		t.Fatalf("fully covered diff must be empty, got %s", covered)
	}
	requireSet(t, a.SetDiff(Set{}), []float64{0, 20}, []float64{10, 30})
}

func TestContainsAndInInterval(t *testing.T) {
	s := MustNew([]float64{0, 10}, []float64{5, 15})
	got := s.InInterval([]float64{-1, 0, 5, 7, 10, 15.5})
	want := []int{-1, 0, 0, -1, 1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("InInterval[%d]=%d, want %d", i, got[i], want[i])
		}
	}
	if !s.Contains(12) || s.Contains(6) {
		t.Fatalf("Contains mismatch")
	}
}

func TestDropAndMerge(t *testing.T) {
	s := MustNew([]float64{0, 10, 12}, []float64{5, 11, 20})
	requireSet(t, s.DropShortIntervals(1, core.Seconds), []float64{0, 12}, []float64{5, 20})
	requireSet(t, s.DropLongIntervals(6000, core.Milliseconds), []float64{0, 10}, []float64{5, 11})
	requireSet(t, s.MergeCloseIntervals(1, core.Seconds), []float64{0, 10}, []float64{5, 20})
	requireSet(t, s.MergeCloseIntervals(5, core.Seconds), []float64{0}, []float64{20})
	if !(Set{}).MergeCloseIntervals(1, core.Seconds).Empty() {
		t.Fatalf("merge of empty set must be empty")
	}
}

func TestSplit(t *testing.T) {
	s := MustNew([]float64{0, 10}, []float64{3.5, 10.5})
	got, err := s.Split(1, core.Seconds)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	requireSet(t, got, []float64{0, 1, 2}, []float64{1, 2, 3})

	if _, err := s.Split(0, core.Seconds); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestOverlapSplit(t *testing.T) {
	s := Single(0, 1)
	got, err := s.OverlapSplit(0.4, 0.5)
	if err != nil {
		t.Fatalf("OverlapSplit error: %v", err)
	}
	// windows start at 0, 0.2, 0.4; 0.6+0.4 reaches the end and is excluded.
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3: %v", len(got), got)
	}
	if got[1][0] != 0.2 || got[2][1] < 0.79 {
		t.Fatalf("unexpected windows: %v", got)
	}

	if _, err := s.OverlapSplit(0.1, 1); !errors.Is(err, ErrInvalidOverlap) {
		t.Fatalf("expected ErrInvalidOverlap, got %v", err)
	}
	if _, err := s.OverlapSplit(-1, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}
