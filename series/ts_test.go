package series

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/internal/testutil"
)

func TestNewTsSortsAndSupports(t *testing.T) {
	ts := MustTs([]float64{3, 1, 2})
	testutil.RequireSliceNearlyEqual(t, ts.Times(), []float64{1, 2, 3}, 0)

	lo, hi, ok := ts.TimeSupport().Bounds()
	if !ok || lo != 1 || hi != 3 {
		t.Fatalf("default support = [%v, %v], want [1, 3]", lo, hi)
	}
	if got := ts.Rate(); got != 1.5 {
		t.Fatalf("Rate=%v, want 1.5", got)
	}
}

func TestNewTsWithSupport(t *testing.T) {
	ep := interval.Single(0, 10)
	ts := MustTs([]float64{-1, 0, 5, 10, 11}, WithTimeSupport(ep))
	testutil.RequireSliceNearlyEqual(t, ts.Times(), []float64{0, 5, 10}, 0)
	if got := ts.Rate(); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("Rate=%v, want 0.3", got)
	}
}

func TestNewTsTimeUnit(t *testing.T) {
	ts := MustTs([]float64{500, 1500}, WithTimeUnit(core.Milliseconds))
	testutil.RequireSliceNearlyEqual(t, ts.Times(), []float64{0.5, 1.5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, ts.TimesIn(core.Microseconds), []float64{5e5, 1.5e6}, 1e-6)
}

func TestNewTsErrors(t *testing.T) {
	if _, err := NewTs([]float64{math.NaN()}); !errors.Is(err, ErrNaNTime) {
		t.Fatalf("expected ErrNaNTime, got %v", err)
	}
	empty := MustTs(nil)
	if empty.Len() != 0 || empty.Rate() != 0 || !empty.TimeSupport().Empty() {
		t.Fatalf("empty train misbehaves")
	}
}

func TestTsRestrictGet(t *testing.T) {
	ts := MustTs([]float64{0, 1, 2, 3, 4, 5, 6})
	ep := interval.MustNew([]float64{1, 4}, []float64{2, 5})

	r := ts.Restrict(ep)
	testutil.RequireSliceNearlyEqual(t, r.Times(), []float64{1, 2, 4, 5}, 0)
	if !r.TimeSupport().Equal(ep) {
		t.Fatalf("restricted support = %s, want %s", r.TimeSupport(), ep)
	}

	g := ts.Get(2, 4)
	testutil.RequireSliceNearlyEqual(t, g.Times(), []float64{2, 3, 4}, 0)

	lo, hi := ts.GetSlice(2, 4)
	if lo != 2 || hi != 4 {
		t.Fatalf("GetSlice=(%d,%d), want (2,4)", lo, hi)
	}
	if lo, hi := ts.GetSlice(5, 1); hi != lo {
		t.Fatalf("reversed GetSlice must be empty, got (%d,%d)", lo, hi)
	}
}

func TestTsCount(t *testing.T) {
	ts := MustTs([]float64{0, 0.5, 1, 2.2, 3}, WithTimeSupport(interval.Single(0, 3)))
	c, err := ts.Count(1, core.Seconds, interval.Set{})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, c.Times(), []float64{0.5, 1.5, 2.5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, c.Values(), []float64{2, 1, 2}, 0)

	ms, err := ts.Count(1000, core.Milliseconds, interval.Set{})
	if err != nil {
		t.Fatalf("Count ms error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, ms.Values(), c.Values(), 0)

	if _, err := ts.Count(0, core.Seconds, interval.Set{}); !errors.Is(err, ErrInvalidBinSize) {
		t.Fatalf("expected ErrInvalidBinSize, got %v", err)
	}
}

func touchingEpochs(t *testing.T) interval.Set {
	t.Helper()
	ep, err := interval.Single(0, 3).Split(1, core.Seconds)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if ep.Len() != 3 {
		t.Fatalf("Split gave %s", ep)
	}
	return ep
}

func TestTsRestrictTouchingEpochs(t *testing.T) {
	ts := MustTs([]float64{0.5, 1, 1.5, 2, 2.5, 3})
	r := ts.Restrict(touchingEpochs(t))
	testutil.RequireSliceNearlyEqual(t, r.Times(), ts.Times(), 0)
}

func TestTsCountTouchingEpochs(t *testing.T) {
	ts := MustTs([]float64{0.5, 1, 1.5, 2, 2.5, 3})
	c, err := ts.Count(1, core.Seconds, touchingEpochs(t))
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, c.Times(), []float64{0.5, 1.5, 2.5}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, c.Values(), []float64{2, 2, 2}, 0)
}

func TestTsSingleTimestampSupport(t *testing.T) {
	ts := MustTs([]float64{50})
	if ts.TimeSupport().Empty() {
		t.Fatalf("single timestamp train has an empty support")
	}
	if !ts.TimeSupport().Contains(50) {
		t.Fatalf("support %s does not hold the timestamp", ts.TimeSupport())
	}
	if r := ts.Restrict(ts.TimeSupport()); r.Len() != 1 {
		t.Fatalf("restricting to own support kept %d events", r.Len())
	}

	same := MustTs([]float64{2, 2, 2})
	if same.TimeSupport().Empty() || same.Restrict(same.TimeSupport()).Len() != 3 {
		t.Fatalf("coincident timestamps lost: support %s", same.TimeSupport())
	}
}
