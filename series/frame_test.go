package series

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/internal/testutil"
)

func TestNewTsdFrame(t *testing.T) {
	f, err := NewTsdFrame([]float64{1, 0}, [][]float64{{1, 0}, {10, 0}}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("NewTsdFrame error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, f.Column(1), []float64{0, 10}, 0)

	y, err := f.ColumnByName("y")
	if err != nil {
		t.Fatalf("ColumnByName error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y.Values(), []float64{0, 10}, 0)

	if _, err := f.ColumnByName("z"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestNewTsdFrameDefaultsAndErrors(t *testing.T) {
	f, err := NewTsdFrame([]float64{0, 1}, [][]float64{{1, 2}}, nil)
	if err != nil {
		t.Fatalf("NewTsdFrame error: %v", err)
	}
	if cols := f.Columns(); len(cols) != 1 || cols[0] != "0" {
		t.Fatalf("default columns = %v", cols)
	}

	if _, err := NewTsdFrame([]float64{0, 1}, [][]float64{{1}}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := NewTsdFrame([]float64{0}, [][]float64{{1}}, []string{"a", "b"}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestTsdFrameRestrictSlice(t *testing.T) {
	f, _ := NewTsdFrame([]float64{0, 1, 2, 3}, [][]float64{{0, 1, 2, 3}, {0, -1, -2, -3}}, nil)

	r := f.Restrict(interval.Single(1, 2))
	testutil.RequireSliceNearlyEqual(t, r.Column(1), []float64{-1, -2}, 0)

	lo, hi := f.GetSlice(1, 3)
	s := f.Slice(lo, hi)
	testutil.RequireSliceNearlyEqual(t, s.Times(), []float64{1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, s.Column(0), []float64{1, 2}, 0)

	one := MustTsd([]float64{0, 1}, []float64{5, 6}).AsFrame("v")
	if one.NumColumns() != 1 || one.Columns()[0] != "v" {
		t.Fatalf("AsFrame columns = %v", one.Columns())
	}
}

func TestTsdFrameRestrictTouchingEpochs(t *testing.T) {
	f, _ := NewTsdFrame([]float64{0, 1, 2}, [][]float64{{0, 1, 2}, {5, 6, 7}}, nil)
	ep := interval.MustNew([]float64{0, 1}, []float64{1, 2})

	r := f.Restrict(ep)
	testutil.RequireSliceNearlyEqual(t, r.Times(), []float64{0, 1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, r.Column(1), []float64{5, 6, 7}, 0)
}
