package spiketrain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/interval"
	"github.com/cwbudde/algo-neuro/internal/testutil"
	"github.com/cwbudde/algo-neuro/series"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateRegular(t *testing.T) {
	s := Calculate(series.MustTs([]float64{0, 1, 2, 3}))

	if s.Count != 4 || s.ISICount != 3 {
		t.Fatalf("count=%d isi=%d", s.Count, s.ISICount)
	}
	if !almostEqual(s.Rate, 4.0/3, tolerance) {
		t.Errorf("Rate: got %g, want 4/3", s.Rate)
	}
	if !almostEqual(s.MeanISI, 1, tolerance) || s.StdISI != 0 || s.CV != 0 || s.LV != 0 {
		t.Errorf("regular train: %+v", s)
	}
}

func TestCalculateIrregular(t *testing.T) {
	s := Calculate(series.MustTs([]float64{0, 1, 3}))

	if !almostEqual(s.MeanISI, 1.5, tolerance) {
		t.Errorf("MeanISI: got %g, want 1.5", s.MeanISI)
	}
	if !almostEqual(s.StdISI, 0.5, tolerance) {
		t.Errorf("StdISI: got %g, want 0.5", s.StdISI)
	}
	if !almostEqual(s.CV, 1.0/3, tolerance) {
		t.Errorf("CV: got %g, want 1/3", s.CV)
	}
	if !almostEqual(s.LV, 1.0/3, tolerance) {
		t.Errorf("LV: got %g, want 1/3", s.LV)
	}
	if s.MinISI != 1 || s.MaxISI != 2 {
		t.Errorf("min/max: got %g/%g", s.MinISI, s.MaxISI)
	}
	if s.Skewness != 0 {
		t.Errorf("Skewness: got %g, want 0 for two ISIs", s.Skewness)
	}
}

func TestCalculateSkipsEpochGaps(t *testing.T) {
	ep := interval.MustNew([]float64{0, 9.5}, []float64{1.5, 11})
	ts := series.MustTs([]float64{0, 1, 10, 11}, series.WithTimeSupport(ep))

	s := Calculate(ts)
	if s.ISICount != 2 || s.MaxISI != 1 {
		t.Fatalf("isi=%d max=%g, want 2 intervals of 1 s", s.ISICount, s.MaxISI)
	}
	if !almostEqual(s.Rate, 4.0/3, tolerance) {
		t.Errorf("Rate: got %g, want 4/3", s.Rate)
	}
	if s.LV != 0 {
		t.Errorf("LV across epochs: got %g, want 0", s.LV)
	}
}

func TestRefractoryViolations(t *testing.T) {
	s := CalculateTimes([]float64{0, 0.001, 1})
	if s.RefractoryViolations != 1 || !almostEqual(s.RefractoryFraction, 0.5, tolerance) {
		t.Fatalf("violations=%d fraction=%g", s.RefractoryViolations, s.RefractoryFraction)
	}

	s = CalculateTimes([]float64{0, 0.001, 1}, WithRefractoryPeriod(0.5, core.Milliseconds))
	if s.RefractoryViolations != 0 {
		t.Fatalf("violations=%d, want 0 with a 0.5 ms period", s.RefractoryViolations)
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Count != 0 || s.Rate != 0 || s.ISICount != 0 {
		t.Fatalf("nil train: %+v", s)
	}

	s = CalculateTimes([]float64{4})
	if s.Count != 1 || s.ISICount != 0 || s.MeanISI != 0 {
		t.Fatalf("single spike: %+v", s)
	}
}

func TestStreamingMatchesBatch(t *testing.T) {
	times := testutil.PoissonTrain(7, 20, 10)
	batch := CalculateTimes(times)

	s := NewStreamingStats()
	for i := 0; i < len(times); i += 13 {
		end := min(i+13, len(times))
		s.Update(times[i:end])
	}
	got := s.Result(times[len(times)-1] - times[0])

	if got.ISICount != batch.ISICount {
		t.Fatalf("isi count %d vs %d", got.ISICount, batch.ISICount)
	}
	for _, pair := range [][2]float64{
		{got.MeanISI, batch.MeanISI},
		{got.StdISI, batch.StdISI},
		{got.LV, batch.LV},
		{got.Skewness, batch.Skewness},
		{got.Rate, batch.Rate},
	} {
		if pair[0] != pair[1] {
			t.Fatalf("streaming %v != batch %v", pair[0], pair[1])
		}
	}

	s.Reset()
	if r := s.Result(0); r.Count != 0 {
		t.Fatalf("after reset: %+v", r)
	}
}

func TestPoissonCV(t *testing.T) {
	s := CalculateTimes(testutil.PoissonTrain(1, 50, 200))
	if math.Abs(s.CV-1) > 0.1 {
		t.Fatalf("Poisson CV=%g, want ~1", s.CV)
	}
	if math.Abs(s.Rate-50) > 5 {
		t.Fatalf("Poisson rate=%g, want ~50", s.Rate)
	}
}

func TestCalculateGroup(t *testing.T) {
	g, err := group.FromTimes(map[int][]float64{
		1: {0, 1, 2},
		2: {0, 0.5, 1, 2},
	}, core.Seconds)
	if err != nil {
		t.Fatal(err)
	}

	out := CalculateGroup(g)
	if len(out) != 2 || out[1].Count != 3 || out[2].Count != 4 {
		t.Fatalf("group stats: %+v", out)
	}
	if CalculateGroup(nil) != nil {
		t.Fatal("nil group should yield nil")
	}
}
