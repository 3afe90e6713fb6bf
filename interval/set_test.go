package interval

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-neuro/core"
)

func requireSet(t *testing.T, got Set, starts, ends []float64) {
	t.Helper()
	if got.Len() != len(starts) {
		t.Fatalf("len=%d, want %d (%s)", got.Len(), len(starts), got)
	}
	for i := range starts {
		if math.Abs(got.Start(i)-starts[i]) > 1e-9 || math.Abs(got.End(i)-ends[i]) > 1e-9 {
			t.Fatalf("interval %d = [%v, %v], want [%v, %v]", i, got.Start(i), got.End(i), starts[i], ends[i])
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		name       string
		starts     []float64
		ends       []float64
		wantStarts []float64
		wantEnds   []float64
	}{
		{"sorted", []float64{0, 10}, []float64{5, 15}, []float64{0, 10}, []float64{5, 15}},
		{"unsorted", []float64{10, 0}, []float64{15, 5}, []float64{0, 10}, []float64{5, 15}},
		{"overlap merged", []float64{0, 3}, []float64{5, 8}, []float64{0}, []float64{8}},
		{"nested merged", []float64{0, 1}, []float64{10, 2}, []float64{0}, []float64{10}},
		{"touching kept", []float64{0, 5}, []float64{5, 8}, []float64{0, 5}, []float64{5, 8}},
		{"empty dropped", []float64{0, 4, 9}, []float64{2, 4, 7}, []float64{0}, []float64{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.starts, tc.ends)
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			requireSet(t, s, tc.wantStarts, tc.wantEnds)
		})
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New([]float64{0}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := New([]float64{math.NaN()}, []float64{1}); !errors.Is(err, ErrNaN) {
		t.Fatalf("expected ErrNaN, got %v", err)
	}
}

func TestNewTimeUnit(t *testing.T) {
	s := MustNew([]float64{0, 2000}, []float64{1000, 3500}, WithTimeUnit(core.Milliseconds))
	requireSet(t, s, []float64{0, 2}, []float64{1, 3.5})
	if got := s.TotLength(core.Seconds); math.Abs(got-2.5) > 1e-12 {
		t.Fatalf("TotLength=%v, want 2.5", got)
	}
	if got := s.TotLength(core.Milliseconds); math.Abs(got-2500) > 1e-9 {
		t.Fatalf("TotLength ms=%v, want 2500", got)
	}
}

func TestAccessorsCopy(t *testing.T) {
	s := Single(1, 2)
	starts := s.Starts()
	starts[0] = 99
	if s.Start(0) != 1 {
		t.Fatalf("Starts must return a copy")
	}
	if lo, hi, ok := s.Bounds(); !ok || lo != 1 || hi != 2 {
		t.Fatalf("Bounds=(%v,%v,%v)", lo, hi, ok)
	}
	if _, _, ok := (Set{}).Bounds(); ok {
		t.Fatalf("empty set must not report bounds")
	}
	if !Single(3, 1).Empty() {
		t.Fatalf("reversed single interval must be empty")
	}
	if got := MustNew([]float64{0, 5}, []float64{1, 7}).String(); got != "[0, 1] [5, 7]" {
		t.Fatalf("String=%q", got)
	}
}
